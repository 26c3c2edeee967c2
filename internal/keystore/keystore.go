// Package keystore provides encrypted file-backed storage for session
// credentials. Values are sealed with AES-GCM under a key derived from a
// passphrase, and writes are atomic so readers never observe a partial file.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
// Callers treat it as "no session", not as a storage failure.
var ErrNotFound = errors.New(errors.ErrCodeStoreNotFound, "no value stored under key")

const (
	pbkdf2Iterations = 100000
	keyLength        = 32
	saltLength       = 16
)

// storeFile is the on-disk representation of the store.
type storeFile struct {
	Salt    string            `json:"salt"`
	Entries map[string]string `json:"entries"`
}

// Store is an encrypted key-value store for secrets.
type Store struct {
	mu sync.RWMutex

	path      string
	masterKey []byte
	salt      []byte
	entries   map[string]string
}

// Open opens the store at path, creating the backing file lazily on first
// Set. An unreadable or undecryptable existing file is a storage failure.
func Open(path, passphrase string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		salt := make([]byte, saltLength)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, errors.NewStoreUnavailableError(err)
		}
		s.salt = salt
	case err != nil:
		return nil, errors.NewStoreUnavailableError(err)
	default:
		var file storeFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreCorrupt, "token store file is corrupt", err).
				WithSuggestion("Remove " + path + " and log in again")
		}
		salt, err := base64.StdEncoding.DecodeString(file.Salt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreCorrupt, "token store salt is corrupt", err).
				WithSuggestion("Remove " + path + " and log in again")
		}
		s.salt = salt
		if file.Entries != nil {
			s.entries = file.Entries
		}
	}

	s.masterKey = pbkdf2.Key([]byte(passphrase), s.salt, pbkdf2Iterations, keyLength, sha256.New)

	return s, nil
}

// Set stores a value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := s.encrypt(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to encrypt value", err)
	}

	previous, had := s.entries[key]
	s.entries[key] = encrypted

	if err := s.save(); err != nil {
		// Roll back the in-memory entry so memory and disk stay consistent.
		if had {
			s.entries[key] = previous
		} else {
			delete(s.entries, key)
		}
		return err
	}

	return nil
}

// Get retrieves the value stored under key. Returns ErrNotFound when the key
// is absent; any other failure means the store itself is unusable.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	encrypted, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}

	value, err := s.decrypt(encrypted)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreCorrupt, "failed to decrypt stored value", err).
			WithSuggestion("Remove " + s.path + " and log in again")
	}

	return value, nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}

	previous := s.entries[key]
	delete(s.entries, key)

	if err := s.save(); err != nil {
		s.entries[key] = previous
		return err
	}

	return nil
}

// encrypt seals a value with AES-GCM
func (s *Store) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt opens a value sealed with AES-GCM
func (s *Store) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// save writes the store to disk via a temp file and rename, so a concurrent
// reader never sees a partially written file.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewStoreUnavailableError(err)
	}

	file := storeFile{
		Salt:    base64.StdEncoding.EncodeToString(s.salt),
		Entries: s.entries,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.NewStoreUnavailableError(err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStoreUnavailableError(err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStoreUnavailableError(err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreUnavailableError(err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreUnavailableError(err)
	}

	return nil
}
