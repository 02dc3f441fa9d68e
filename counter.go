package keystream

import "crypto/cipher"

// Counter describes the layout of an initial counter block: a fixed prefix
// (typically a nonce), an incrementing field holding Initial, and a fixed
// suffix. The field occupies whatever the prefix and suffix leave free, so
// protocol-mandated layouts can be expressed directly.
//
// Reference: https://www.rfc-editor.org/rfc/rfc3686#section-4
//
//	   The AES counter block is 128 bits, including a 4-octet Nonce, 8-octet
//	   Initialization Vector (IV), and 4-octet Block Counter, in that order.
//
type Counter struct {
	Prefix  []byte
	Suffix  []byte
	Initial uint64
	Order   ByteOrder
}

// FieldLen returns the width in bytes of the incrementing field for the
// given block size.
func (c Counter) FieldLen(blockSize int) int {
	return blockSize - len(c.Prefix) - len(c.Suffix)
}

// Block renders the initial counter block for the given block size.
func (c Counter) Block(blockSize int) ([]byte, error) {
	n := c.FieldLen(blockSize)
	if n < 1 {
		return nil, ErrCounterLength
	}
	if n < 8 && c.Initial>>(uint(n)*8) != 0 {
		return nil, ErrCounterValue
	}

	block := make([]byte, blockSize)
	copy(block, c.Prefix)
	copy(block[blockSize-len(c.Suffix):], c.Suffix)

	field := block[len(c.Prefix) : len(c.Prefix)+n]
	v := c.Initial
	switch c.Order {
	case BigEndian:
		for i := 0; i < n && i < 8; i++ {
			field[n-1-i] = byte(v)
			v >>= 8
		}
	case LittleEndian:
		for i := 0; i < n && i < 8; i++ {
			field[i] = byte(v)
			v >>= 8
		}
	default:
		return nil, ErrByteOrder
	}

	return block, nil
}

// NewWithCounter renders the initial counter block described by c and starts
// a session over block.
func NewWithCounter(block cipher.Block, c Counter) (*Cipher, error) {
	if block == nil {
		return nil, ErrMissingCipher
	}
	blockSize := block.BlockSize()
	cb, err := c.Block(blockSize)
	if err != nil {
		return nil, err
	}
	return New(block, cb, len(c.Prefix), c.FieldLen(blockSize), c.Order)
}

// NewWithNonce starts a big-endian session whose counter field is everything
// after the nonce, starting at zero. A session started this way produces the
// same key stream as the stdlib CTR mode with IV = nonce followed by a zero
// counter, but refuses to run past the end of the counter space.
func NewWithNonce(block cipher.Block, nonce []byte) (*Cipher, error) {
	return NewWithCounter(block, Counter{Prefix: nonce})
}
