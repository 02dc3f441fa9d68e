package keystream

import (
	"io"

	"github.com/mmcloughlin/keystream/buf"
)

// Reader applies a Cipher to everything read from an underlying reader. CTR
// mode is symmetric, so the same Reader serves encryption and decryption.
type Reader struct {
	c *Cipher
	r io.Reader
}

var _ io.Reader = new(Reader)

// NewReader builds a Reader transforming r through c.
func NewReader(c *Cipher, r io.Reader) *Reader {
	return &Reader{
		c: c,
		r: r,
	}
}

// Read fills p from the underlying reader and transforms it in place. If the
// session has failed the transformed bytes cannot be produced: Read reports
// the session error and the stream must be abandoned.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if cerr := r.c.Encrypt(p[:n], p[:n]); cerr != nil {
			return 0, cerr
		}
	}
	return n, err
}

// writerBufferSize is the chunk size Writer transforms at a time.
const writerBufferSize = 4096

// Writer transforms everything written through it before passing it on to an
// underlying writer. The slices handed to Write are never modified.
type Writer struct {
	c       *Cipher
	w       io.Writer
	scratch []byte
}

var _ io.Writer = new(Writer)

// NewWriter builds a Writer transforming writes through c into w.
func NewWriter(c *Cipher, w io.Writer) *Writer {
	return &Writer{
		c:       c,
		w:       w,
		scratch: make([]byte, writerBufferSize),
	}
}

// Write transforms p chunk by chunk through an internal buffer. It returns
// the number of bytes of p consumed and written downstream.
func (w *Writer) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		m := len(p)
		if m > len(w.scratch) {
			m = len(w.scratch)
		}
		head, rest := buf.Consume(p, m)

		if err := w.c.Encrypt(w.scratch[:m], head); err != nil {
			return written, err
		}
		n, err := w.w.Write(w.scratch[:m])
		written += n
		if err != nil {
			return written, err
		}

		p = rest
	}
	return written, nil
}
