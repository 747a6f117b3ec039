// Package mnemonic converts between BIP39 phrases and their entropy so that a
// seed phrase can be split as raw bytes and printed back as words on recovery.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	MinEntropyBytes = 16
	MaxEntropyBytes = 32
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

type Mnemonic struct {
	words []string
}

// FromWords parses a phrase, tolerating mixed case and irregular whitespace.
func FromWords(words string) (*Mnemonic, error) {
	normalized := Normalize(words)
	if !bip39.IsMnemonicValid(normalized) {
		return nil, ErrInvalidMnemonic
	}

	return &Mnemonic{
		words: strings.Fields(normalized),
	}, nil
}

func FromEntropy(entropy []byte) (*Mnemonic, error) {
	if !ValidEntropySize(len(entropy)) {
		return nil, fmt.Errorf("entropy must be 16 to 32 bytes in steps of 4, got %d", len(entropy))
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic from entropy: %w", err)
	}

	return &Mnemonic{
		words: strings.Fields(phrase),
	}, nil
}

func (m *Mnemonic) Words() string {
	return strings.Join(m.words, " ")
}

func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

func (m *Mnemonic) Entropy() ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(m.Words())
	if err != nil {
		return nil, fmt.Errorf("failed to get entropy from mnemonic: %w", err)
	}
	return entropy, nil
}

func Normalize(words string) string {
	return strings.Join(strings.Fields(strings.ToLower(words)), " ")
}

func ValidEntropySize(size int) bool {
	return size >= MinEntropyBytes && size <= MaxEntropyBytes && size%4 == 0
}
