package telemetry

import (
	"io"

	"github.com/uber-go/tally"
	"go.uber.org/atomic"
)

// Bandwidth counts bytes moving through a stream, publishing to a metric and
// keeping a running total for readback.
type Bandwidth struct {
	c     tally.Counter
	total *atomic.Int64
}

func NewBandwidth(c tally.Counter) *Bandwidth {
	return &Bandwidth{
		c:     c,
		total: atomic.NewInt64(0),
	}
}

func (b *Bandwidth) Write(d []byte) (int, error) {
	n := len(d)
	b.c.Inc(int64(n))
	b.total.Add(int64(n))
	return n, nil
}

// Total returns the number of bytes seen so far.
func (b *Bandwidth) Total() int64 {
	return b.total.Load()
}

func (b *Bandwidth) WrapReader(r io.Reader) io.Reader {
	return io.TeeReader(r, b)
}

func (b *Bandwidth) WrapWriter(w io.Writer) io.Writer {
	return io.MultiWriter(w, b)
}
