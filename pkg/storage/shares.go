package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Davincible/gfshare/pkg/crypto/shamir"
	"github.com/Davincible/gfshare/pkg/secure"
)

// StoredShares is the plaintext payload of a share file.
type StoredShares struct {
	Threshold int               `json:"threshold,omitempty"`
	Total     int               `json:"total,omitempty"`
	Shares    []string          `json:"shares,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Decode parses the hex encoded shares.
func (s *StoredShares) Decode() ([]shamir.Share, error) {
	shares := make([]shamir.Share, len(s.Shares))
	for i, encoded := range s.Shares {
		share, err := shamir.ParseShareString(encoded)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shares[i] = share
	}
	return shares, nil
}

// shareFile is the on-disk layout: either the plaintext fields or Encrypted.
type shareFile struct {
	StoredShares
	Encrypted *EncryptedData `json:"encrypted,omitempty"`
}

type ShareStorage struct {
	storage *SecureStorage
}

func NewShareStorage(filepath string) *ShareStorage {
	return &ShareStorage{
		storage: NewSecureStorage(filepath),
	}
}

func (s *ShareStorage) SetKDFParams(params KDFParams) {
	s.storage.SetKDFParams(params)
}

func (s *ShareStorage) Path() string {
	return s.storage.Path()
}

// SaveShares writes shares as hex. A non-empty password encrypts the file.
func (s *ShareStorage) SaveShares(shares []shamir.Share, threshold int, password []byte) error {
	stored := StoredShares{
		Threshold: threshold,
		Total:     len(shares),
		Shares:    make([]string, len(shares)),
	}
	for i, share := range shares {
		stored.Shares[i] = share.Hex()
	}

	var file shareFile
	if len(password) == 0 {
		file.StoredShares = stored
	} else {
		payload, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("failed to marshal shares: %w", err)
		}
		defer secure.Zero(payload)

		encrypted, err := s.storage.Seal(payload, password)
		if err != nil {
			return err
		}
		file.Encrypted = encrypted
	}

	data, err := marshal(file)
	if err != nil {
		return err
	}
	return s.storage.write(data)
}

func (s *ShareStorage) load() (*shareFile, error) {
	data, err := s.storage.read()
	if err != nil {
		return nil, err
	}

	var file shareFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse share file: %w", err)
	}
	return &file, nil
}

// IsEncrypted reports whether the file on disk needs a password.
func (s *ShareStorage) IsEncrypted() (bool, error) {
	file, err := s.load()
	if err != nil {
		return false, err
	}
	return file.Encrypted != nil, nil
}

// LoadShares reads the file, decrypting it when it is encrypted.
func (s *ShareStorage) LoadShares(password []byte) (*StoredShares, error) {
	file, err := s.load()
	if err != nil {
		return nil, err
	}

	if file.Encrypted == nil {
		return &file.StoredShares, nil
	}

	payload, err := Open(file.Encrypted, password)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(payload)

	var stored StoredShares
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shares: %w", err)
	}
	return &stored, nil
}

func (s *ShareStorage) Exists() bool {
	return s.storage.Exists()
}

func (s *ShareStorage) Delete() error {
	return s.storage.Delete()
}
