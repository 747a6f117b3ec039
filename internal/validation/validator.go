package validation

import (
	"fmt"
	"strings"

	"github.com/Davincible/gfshare/pkg/crypto/shamir"
)

// ParseShare validates and decodes a hex or base64 share.
func ParseShare(input string) (shamir.Share, error) {
	share, err := shamir.ParseShareString(SanitizeInput(input))
	if err != nil {
		return shamir.Share{}, fmt.Errorf("invalid share format: %w", err)
	}

	if share.Len() == 0 {
		return shamir.Share{}, fmt.Errorf("share is too short")
	}

	return share, nil
}

func ValidateSplitParams(parts, threshold int) error {
	config := shamir.Config{
		Parts:     parts,
		Threshold: threshold,
	}
	return config.Validate()
}

// ValidateShareSet checks that shares can be combined: equal lengths and
// distinct nonzero x coordinates at every position.
func ValidateShareSet(shares []shamir.Share) error {
	if len(shares) == 0 {
		return shamir.ErrNoShares
	}

	size := shares[0].Len()
	for i, share := range shares {
		if share.Len() != size {
			return fmt.Errorf("%w: share %d has %d bytes, share 1 has %d",
				shamir.ErrShareLengthMismatch, i+1, share.Len(), size)
		}
	}

	for pos := 0; pos < size; pos++ {
		owner := make(map[byte]int, len(shares))
		for i, share := range shares {
			x := share.Point(pos).X.Byte()
			if x == 0 {
				return fmt.Errorf("%w: share %d has x = 0 at position %d", shamir.ErrInvalidCoordinate, i+1, pos)
			}
			if prev, ok := owner[x]; ok {
				return fmt.Errorf("%w: shares %d and %d share x at position %d (duplicate share?)",
					shamir.ErrInvalidCoordinate, prev, i+1, pos)
			}
			owner[x] = i + 1
		}
	}

	return nil
}

func ValidateMnemonic(words string) error {
	words = strings.TrimSpace(words)
	if words == "" {
		return fmt.Errorf("mnemonic cannot be empty")
	}

	wordList := strings.Fields(words)
	if !ValidateWordCount(len(wordList)) {
		return fmt.Errorf("mnemonic must have 12, 15, 18, 21, or 24 words (got %d)", len(wordList))
	}

	for i, word := range wordList {
		if len(word) < 3 || len(word) > 8 {
			return fmt.Errorf("word %d has invalid length: %s", i+1, word)
		}

		for _, ch := range strings.ToLower(word) {
			if ch < 'a' || ch > 'z' {
				return fmt.Errorf("word %d contains invalid characters: %s", i+1, word)
			}
		}
	}

	return nil
}

func ValidatePassword(password []byte, minLength int) error {
	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters", minLength)
	}

	for i, ch := range password {
		if ch == 0 {
			return fmt.Errorf("password contains null character at position %d", i)
		}
	}

	return nil
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "")
}

func ValidateWordCount(count int) bool {
	validCounts := []int{12, 15, 18, 21, 24}
	for _, valid := range validCounts {
		if count == valid {
			return true
		}
	}
	return false
}
