// Package metadata computes provenance information for written files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrHashMismatch is returned by Verify when the file content changed.
var ErrHashMismatch = errors.New("hash mismatch")

// Metadata describes a file as it was when it was hashed.
type Metadata struct {
	LastModify time.Time
	Path       string
	Hash       string
	Size       int64
}

// FromFile hashes the file at path with SHA-256.
func FromFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	h := sha256.New()

	n, err := io.Copy(h, f)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return &Metadata{
		LastModify: info.ModTime(),
		Path:       path,
		Hash:       hex.EncodeToString(h.Sum(nil)),
		Size:       n,
	}, nil
}

// Verify re-hashes the file and compares it with the recorded hash.
func (m *Metadata) Verify() error {
	current, err := FromFile(m.Path)
	if err != nil {
		return err
	}

	if current.Hash != m.Hash {
		return fmt.Errorf("%w: %s", ErrHashMismatch, m.Path)
	}

	return nil
}

// ShortHash returns the first 12 hex characters of the hash, or "" for nil.
func (m *Metadata) ShortHash() string {
	if m == nil {
		return ""
	}

	if len(m.Hash) < 12 {
		return m.Hash
	}

	return m.Hash[:12]
}
