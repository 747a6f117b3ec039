package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_Compatible(t *testing.T) {
	result := splitJSON(t, "check me", 4, 3)

	out, err := runCommand(t, "", "check", result.Shares[0].Hex, result.Shares[3].Base64)
	require.NoError(t, err)

	assert.Contains(t, out, "Share 1: ✓ Valid (8 secret bytes)")
	assert.Contains(t, out, "SHARES ARE COMPATIBLE")
	assert.Contains(t, out, "threshold is not stored")
}

func TestCheckCommand_Problems(t *testing.T) {
	first := splitJSON(t, "check me", 3, 2)
	other := splitJSON(t, "longer secret", 3, 2)

	testCases := []struct {
		name    string
		args    []string
		problem string
	}{
		{"Undecodable share", []string{first.Shares[0].Hex, "zz"}, "could not be decoded"},
		{"Single share", []string{first.Shares[0].Hex}, "at least 2 shares"},
		{"Length mismatch", []string{first.Shares[0].Hex, other.Shares[0].Hex}, "different lengths"},
		{"Duplicate share", []string{first.Shares[1].Hex, first.Shares[1].Base64}, "duplicate share"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCommand(t, "", append([]string{"--json", "check"}, tc.args...)...)
			assert.ErrorIs(t, err, ErrIncompatibleShares)

			result := decodeJSON[CheckResult](t, out)
			assert.False(t, result.Compatible)
			assert.Contains(t, result.Problem, tc.problem)
		})
	}
}

func TestCheckCommand_ShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shares.json")

	_, err := runCommand(t, "stored secret", "split", "--stdin", "-n", "5", "-t", "3", "-o", path)
	require.NoError(t, err)

	out, err := runCommand(t, "", "--json", "check", "--input", path)
	require.NoError(t, err)

	result := decodeJSON[CheckResult](t, out)
	assert.True(t, result.Compatible)
	assert.Equal(t, 3, result.Threshold)
	assert.Len(t, result.Shares, 5)

	out, err = runCommand(t, "", "check", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SUFFICIENT SHARES FOR RECOVERY")
}
