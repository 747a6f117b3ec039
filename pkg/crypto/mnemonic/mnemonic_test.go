package mnemonic

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const zeroMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestFromWords(t *testing.T) {
	m, err := FromWords(zeroMnemonic)
	require.NoError(t, err)
	assert.Equal(t, 12, m.WordCount())
	assert.Equal(t, zeroMnemonic, m.Words())

	m, err = FromWords("  Abandon abandon\tabandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT\n")
	require.NoError(t, err)
	assert.Equal(t, zeroMnemonic, m.Words())

	invalidMnemonic := "invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid"
	_, err = FromWords(invalidMnemonic)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestFromEntropy(t *testing.T) {
	tests := []struct {
		name      string
		entropy   []byte
		wantWords int
		wantError bool
	}{
		{"16 bytes", make([]byte, 16), 12, false},
		{"20 bytes", make([]byte, 20), 15, false},
		{"24 bytes", make([]byte, 24), 18, false},
		{"28 bytes", make([]byte, 28), 21, false},
		{"32 bytes", make([]byte, 32), 24, false},
		{"Invalid: 15 bytes", make([]byte, 15), 0, true},
		{"Invalid: 33 bytes", make([]byte, 33), 0, true},
		{"Invalid: 18 bytes", make([]byte, 18), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromEntropy(tt.entropy)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, m.WordCount())
			assert.True(t, bip39.IsMnemonicValid(m.Words()))
		})
	}
}

func TestEntropyRoundTrip(t *testing.T) {
	entropy, err := hex.DecodeString("7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f")
	require.NoError(t, err)

	m, err := FromEntropy(entropy)
	require.NoError(t, err)
	assert.Equal(t, "legal winner thank year wave sausage worth useful legal winner thank yellow", m.Words())

	parsed, err := FromWords(m.Words())
	require.NoError(t, err)

	recovered, err := parsed.Entropy()
	require.NoError(t, err)
	assert.Equal(t, entropy, recovered)
}

func TestValidEntropySize(t *testing.T) {
	for _, size := range []int{16, 20, 24, 28, 32} {
		assert.True(t, ValidEntropySize(size), "size %d", size)
	}
	for _, size := range []int{0, 12, 17, 30, 36} {
		assert.False(t, ValidEntropySize(size), "size %d", size)
	}
}
