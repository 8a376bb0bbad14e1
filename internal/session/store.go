package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"chaintask/internal/contract"
)

// DefaultSigner is used when connect is run without --signer.
const DefaultSigner = "polkadot-js"

// Record is the persisted part of a session.
type Record struct {
	Account string `json:"account"`
	Signer  string `json:"signer"`
}

// FileStore persists the wallet session in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Exists reports whether a session file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the stored session. It returns (nil, nil) when none is stored.
func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	return &rec, nil
}

// Save writes the session with mode 0600.
func (s *FileStore) Save(rec Record) error {
	rec.Account = strings.TrimSpace(rec.Account)
	if rec.Account == "" {
		return errors.New("account required")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Remove deletes the stored session.
func (s *FileStore) Remove() error {
	return os.Remove(s.path)
}

// FromRecord builds a Session from a stored record and a connection.
// A nil record yields a session with only the connection set.
func FromRecord(rec *Record, conn contract.Connection) Session {
	sess := Session{Conn: conn}
	if rec == nil {
		return sess
	}
	sess.Account = rec.Account
	if rec.Signer != "" {
		sess.Signer = NamedSigner(rec.Signer)
	}
	return sess
}
