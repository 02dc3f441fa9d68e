package config

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/mmcloughlin/keystream/suite"
)

const keyFilePermissions os.FileMode = 0600

// CheckKeyFilePermissions checks whether the given file has appropriate
// permissions for a secret key.
func CheckKeyFilePermissions(filename string) error {
	return checkPermissionsAtMost(filename, keyFilePermissions)
}

func checkPermissionsAtMost(filename string, allow os.FileMode) error {
	s, err := os.Stat(filename)
	if err != nil {
		return err
	}

	perm := s.Mode().Perm()
	if (perm & ^allow) != 0 {
		return errors.Errorf("permissions must be at most 0%03o", allow)
	}

	return nil
}

// LoadKeyFromFile reads a hex encoded key from a file, refusing files with
// lax permissions.
func LoadKeyFromFile(filename string) ([]byte, error) {
	if err := CheckKeyFilePermissions(filename); err != nil {
		return nil, err
	}

	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	key, err := hex.DecodeString(string(bytes.TrimSpace(b)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse key")
	}

	return key, nil
}

// SaveKeyToFile writes a hex encoded key to a file readable only by the
// owner.
func SaveKeyToFile(key []byte, filename string) error {
	data := []byte(hex.EncodeToString(key) + "\n")
	return ioutil.WriteFile(filename, data, keyFilePermissions)
}

// GenerateKeyFile creates a fresh key for the named cipher suite and saves
// it, returning the generated key.
func GenerateKeyFile(name, filename string) ([]byte, error) {
	key, err := suite.GenerateKey(name)
	if err != nil {
		return nil, err
	}
	if err := SaveKeyToFile(key, filename); err != nil {
		return nil, errors.Wrap(err, "failed to save key")
	}
	return key, nil
}
