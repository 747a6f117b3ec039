package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/Davincible/gfshare/pkg/secure"
)

const (
	SaltSize = 32
	KeySize  = chacha20poly1305.KeySize
	kdfName  = "argon2id"
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrDecrypt       = errors.New("failed to decrypt: wrong password or corrupted file")
	ErrKDFParams     = errors.New("invalid key derivation parameters")
)

// KDFParams are the argon2id cost parameters, stored next to the ciphertext.
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
}

var DefaultKDFParams = KDFParams{Time: 3, Memory: 64 * 1024, Threads: 4}

// Upper bounds for parameters read back from a file: 4 GiB of memory and 64
// passes.
const (
	MaxKDFMemory = 4 * 1024 * 1024
	MaxKDFTime   = 64
)

// Validate rejects parameters argon2 would panic on or that would exhaust the
// machine.
func (p KDFParams) Validate() error {
	switch {
	case p.Time < 1 || p.Time > MaxKDFTime:
		return fmt.Errorf("%w: time %d not in 1..%d", ErrKDFParams, p.Time, MaxKDFTime)
	case p.Memory < 1 || p.Memory > MaxKDFMemory:
		return fmt.Errorf("%w: memory %d KiB not in 1..%d", ErrKDFParams, p.Memory, MaxKDFMemory)
	case p.Threads < 1:
		return fmt.Errorf("%w: threads must be at least 1", ErrKDFParams)
	}
	return nil
}

type EncryptedData struct {
	KDF        string    `json:"kdf"`
	Params     KDFParams `json:"params"`
	Salt       []byte    `json:"salt"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

// SecureStorage writes a payload to disk, optionally sealed with a password.
type SecureStorage struct {
	filepath string
	params   KDFParams
}

func NewSecureStorage(filepath string) *SecureStorage {
	return &SecureStorage{
		filepath: filepath,
		params:   DefaultKDFParams,
	}
}

// SetKDFParams overrides the argon2id cost for files written afterwards.
func (s *SecureStorage) SetKDFParams(params KDFParams) {
	s.params = params
}

func (s *SecureStorage) Path() string {
	return s.filepath
}

func deriveKey(password, salt []byte, params KDFParams) []byte {
	return argon2.IDKey(password, salt, params.Time, params.Memory, params.Threads, KeySize)
}

// Seal encrypts data with a key derived from password.
func (s *SecureStorage) Seal(data, password []byte) (*EncryptedData, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if err := s.params.Validate(); err != nil {
		return nil, err
	}

	salt, err := secure.SecureRandom(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(password, salt, s.params)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce, err := secure.SecureRandom(aead.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &EncryptedData{
		KDF:        kdfName,
		Params:     s.params,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, data, nil),
	}, nil
}

// Open reverses Seal.
func Open(encrypted *EncryptedData, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if encrypted.KDF != kdfName {
		return nil, fmt.Errorf("unsupported key derivation %q", encrypted.KDF)
	}
	if err := encrypted.Params.Validate(); err != nil {
		return nil, err
	}

	key := deriveKey(password, encrypted.Salt, encrypted.Params)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(encrypted.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(encrypted.Nonce))
	}

	plaintext, err := aead.Open(nil, encrypted.Nonce, encrypted.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}

func (s *SecureStorage) write(data []byte) error {
	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := s.filepath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.filepath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

func (s *SecureStorage) read() ([]byte, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *SecureStorage) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

// Delete overwrites the file with random bytes before removing it.
func (s *SecureStorage) Delete() error {
	info, err := os.Stat(s.filepath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	noise, err := secure.SecureRandom(int(info.Size()))
	if err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	if err := os.WriteFile(s.filepath, noise, 0600); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	return os.Remove(s.filepath)
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return data, nil
}
