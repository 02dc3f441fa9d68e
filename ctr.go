// Package keystream implements counter (CTR) mode over arbitrary block
// ciphers, with explicit control of the position, width and byte order of the
// incrementing counter field within the counter block.
//
// Unlike the fixed full-block counter of crypto/cipher, a Cipher increments
// only a declared sub-range of the block and refuses to hand out key stream
// once the counter wraps back to its starting value.
package keystream

import (
	"bytes"
	"crypto/cipher"
	"io"

	"github.com/mmcloughlin/keystream/buf"
)

// Cipher is a CTR mode session: a stream cipher built by encrypting
// successive counter blocks and combining the result with data via XOR.
//
// A Cipher owns its block cipher and is stateful: every call consumes key
// stream. It performs no internal locking; callers sharing a session across
// goroutines must serialize access themselves.
type Cipher struct {
	block     cipher.Block
	blockSize int

	// original is the pristine initial counter block, retained only to detect
	// the counter wrapping back to its starting value.
	original     []byte
	counterBlock []byte
	counter      []byte // incrementing field within counterBlock
	keyStream    []byte
	used         int // bytes of keyStream consumed; == blockSize means exhausted

	inc    incrementFunc
	blocks uint64
	err    error // sticky fatal state
}

// New starts a CTR session over block. The initial counter block must be
// exactly one cipher block; the incrementing counter field is the counterLen
// bytes starting at offset prefixLen, incremented in the given byte order.
// Bytes outside the field are never modified.
//
// The counter block is copied; the caller may reuse its slice. The block
// cipher is owned by the returned Cipher until Close.
func New(block cipher.Block, counterBlock []byte, prefixLen, counterLen int, order ByteOrder) (*Cipher, error) {
	if block == nil {
		return nil, ErrMissingCipher
	}

	blockSize := block.BlockSize()
	if len(counterBlock) != blockSize {
		return nil, ErrCounterBlockSize
	}
	if counterLen < 1 {
		return nil, ErrCounterLength
	}
	if prefixLen < 0 || counterLen > blockSize || prefixLen > blockSize-counterLen {
		return nil, ErrCounterBounds
	}

	inc, ok := incrementer(order)
	if !ok {
		return nil, ErrByteOrder
	}

	c := &Cipher{
		block:        block,
		blockSize:    blockSize,
		original:     append([]byte(nil), counterBlock...),
		counterBlock: append([]byte(nil), counterBlock...),
		keyStream:    make([]byte, blockSize),
		used:         blockSize,
		inc:          inc,
	}
	c.counter = c.counterBlock[prefixLen : prefixLen+counterLen]

	return c, nil
}

// BlockSize returns the block size of the underlying cipher.
func (c *Cipher) BlockSize() int {
	return c.blockSize
}

// Blocks returns the number of key stream blocks generated so far.
func (c *Cipher) Blocks() uint64 {
	return c.blocks
}

// Encrypt XORs src with key stream into dst, which must be at least as long
// as src. It may be called any number of times: the key stream continues
// across calls exactly as if the inputs had been concatenated. Dst and src
// must overlap entirely or not at all.
//
// Whenever a fresh key stream block is needed, the current counter block is
// encrypted and then the counter field is incremented. If the incremented
// block equals the initial counter block the session has exhausted its
// counter space: Encrypt returns ErrKeyStreamReuse before emitting a single
// repeated byte, and the session is permanently unusable. On any error the
// contents of dst are undefined and the session must be discarded.
//
// Reference: https://nvlpubs.nist.gov/nistpubs/Legacy/SP/nistspecialpublication800-38a.pdf (Appendix B)
//
//	   The specification of the CTR mode requires a unique counter block for
//	   each plaintext block that is ever encrypted under a given key, across
//	   all messages.
//
func (c *Cipher) Encrypt(dst, src []byte) error {
	if c.err != nil {
		return c.err
	}
	if c.block == nil {
		return ErrMissingCipher
	}
	if len(dst) < len(src) {
		return ErrShortOutput
	}

	for len(src) > 0 {
		if c.used == c.blockSize {
			c.block.Encrypt(c.keyStream, c.counterBlock)
			c.used = 0
			c.blocks++

			// Prepare the next counter block, then fail if the key stream is
			// about to repeat.
			c.inc(c.counter)
			if bytes.Equal(c.counterBlock, c.original) {
				c.err = ErrKeyStreamReuse
				return c.err
			}
		}

		n := buf.XOR(dst, src, c.keyStream[c.used:])
		dst = dst[n:]
		src = src[n:]
		c.used += n
	}

	return nil
}

// Decrypt is Encrypt: CTR mode is symmetric, XOR being its own inverse.
func (c *Cipher) Decrypt(dst, src []byte) error {
	return c.Encrypt(dst, src)
}

// XORKeyStream implements cipher.Stream, allowing a Cipher to stand in
// wherever a stdlib stream cipher is expected (cipher.StreamReader and
// friends). It panics if the session has failed or is closed, since the
// interface leaves no room for an error return.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if err := c.Encrypt(dst, src); err != nil {
		panic("keystream: " + err.Error())
	}
}

// Close zeroizes the session state and releases the owned block cipher,
// invoking its Close method if it has one. The session is unusable
// afterwards; closing twice returns ErrClosed.
func (c *Cipher) Close() error {
	if c.block == nil {
		return ErrClosed
	}

	buf.Zero(c.original)
	buf.Zero(c.counterBlock)
	buf.Zero(c.keyStream)
	c.used = c.blockSize

	var err error
	if closer, ok := c.block.(io.Closer); ok {
		err = closer.Close()
	}
	c.block = nil
	c.err = ErrClosed

	return err
}

var _ cipher.Stream = new(Cipher)
