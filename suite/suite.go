// Package suite provides the block ciphers available for counter mode by
// name.
package suite

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/twofish"
	"golang.org/x/crypto/xtea"
)

// builder constructs a block cipher from a key.
type builder func(key []byte) (cipher.Block, error)

// entry describes a named suite: the key length it requires and how to build
// it. Variable key length ciphers are pinned to one canonical length so key
// generation is deterministic.
type entry struct {
	keyLen int
	build  builder
}

var suites = map[string]entry{
	"aes-128":  {16, newAES},
	"aes-192":  {24, newAES},
	"aes-256":  {32, newAES},
	"des":      {8, des.NewCipher},
	"des-ede3": {24, des.NewTripleDESCipher},
	"blowfish": {16, newBlowfish},
	"twofish":  {32, newTwofish},
	"cast5":    {16, newCAST5},
	"xtea":     {16, newXTEA},
}

func newAES(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}

func newTwofish(key []byte) (cipher.Block, error) {
	return twofish.NewCipher(key)
}

func newCAST5(key []byte) (cipher.Block, error) {
	return cast5.NewCipher(key)
}

func newXTEA(key []byte) (cipher.Block, error) {
	return xtea.NewCipher(key)
}

// Names lists the available cipher suites in sorted order.
func Names() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyLen returns the key length in bytes the named suite requires.
func KeyLen(name string) (int, error) {
	e, ok := suites[name]
	if !ok {
		return 0, errors.Errorf("unknown cipher suite %q", name)
	}
	return e.keyLen, nil
}

// New builds the named block cipher with the given key.
func New(name string, key []byte) (cipher.Block, error) {
	e, ok := suites[name]
	if !ok {
		return nil, errors.Errorf("unknown cipher suite %q", name)
	}
	if len(key) != e.keyLen {
		return nil, errors.Errorf("cipher suite %q requires a %d byte key", name, e.keyLen)
	}
	block, err := e.build(key)
	if err != nil {
		return nil, errors.Wrap(err, "building block cipher")
	}
	return block, nil
}

// GenerateKey produces a fresh random key of the right length for the named
// suite.
func GenerateKey(name string) ([]byte, error) {
	n, err := KeyLen(name)
	if err != nil {
		return nil, err
	}
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generating key")
	}
	return key, nil
}
