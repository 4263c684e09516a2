// Package auth hashes passwords and issues the encrypted tokens carried by session cookies.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// KeySize is the PASETO v4 local key size in bytes.
const KeySize = 32

// KeyFileName is the file under the data directory that stores the hex-encoded token key.
const KeyFileName = "auth.key"

// LoadOrGenerateKey reads <dataPath>/auth.key, creating it with a fresh random key on first run.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, KeyFileName)

	//#nosec G304 -- path is derived from the configured data directory
	raw, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		return decodeKey(strings.TrimSpace(string(raw)))
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read auth key: %w", err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}

	return key, nil
}

func decodeKey(keyHex string) ([]byte, error) {
	if len(keyHex) != KeySize*2 {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", KeySize*2, len(keyHex))
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key format: %w", err)
	}
	return key, nil
}
