package keystream

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCipher is a deterministic toy block cipher for tests.
type stubCipher struct {
	bs  int
	pad byte
}

func (s stubCipher) BlockSize() int { return s.bs }

func (s stubCipher) Encrypt(dst, src []byte) {
	for i := 0; i < s.bs; i++ {
		dst[i] = src[i] ^ s.pad ^ byte(i)
	}
}

func (s stubCipher) Decrypt(dst, src []byte) {
	s.Encrypt(dst, src)
}

// recordingCipher captures every block fed to Encrypt.
type recordingCipher struct {
	stubCipher
	inputs [][]byte
}

func (r *recordingCipher) Encrypt(dst, src []byte) {
	r.inputs = append(r.inputs, append([]byte(nil), src...))
	r.stubCipher.Encrypt(dst, src)
}

// closableCipher counts invocations of its release capability.
type closableCipher struct {
	stubCipher
	closed int
}

func (c *closableCipher) Close() error {
	c.closed++
	return nil
}

func unhex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func randBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestNewValidation(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0xa5}
	cb := make([]byte, 16)
	cases := []struct {
		Block        cipher.Block
		CounterBlock []byte
		PrefixLen    int
		CounterLen   int
		Order        ByteOrder
		Err          error
	}{
		{nil, cb, 0, 16, BigEndian, ErrMissingCipher},
		{block, cb[:15], 0, 16, BigEndian, ErrCounterBlockSize},
		{block, make([]byte, 17), 0, 16, BigEndian, ErrCounterBlockSize},
		{block, nil, 0, 16, BigEndian, ErrCounterBlockSize},
		{block, cb, 0, 0, BigEndian, ErrCounterLength},
		{block, cb, 0, -4, BigEndian, ErrCounterLength},
		{block, cb, 13, 4, BigEndian, ErrCounterBounds},
		{block, cb, -1, 4, BigEndian, ErrCounterBounds},
		{block, cb, 0, 17, BigEndian, ErrCounterBounds},
		{block, cb, 0, 16, ByteOrder(42), ErrByteOrder},
	}
	for _, c := range cases {
		s, err := New(c.Block, c.CounterBlock, c.PrefixLen, c.CounterLen, c.Order)
		assert.Nil(t, s)
		assert.Equal(t, c.Err, err)
	}
}

func TestNewValid(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x3c}
	cb := randBytes(t, 16)
	c, err := New(block, cb, 12, 4, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, 16, c.BlockSize())
	assert.Equal(t, uint64(0), c.Blocks())

	// The counter block must be copied, not aliased.
	cb[0] ^= 0xff
	out := make([]byte, 16)
	require.NoError(t, c.Encrypt(out, make([]byte, 16)))
	cb[0] ^= 0xff
	expect := make([]byte, 16)
	block.Encrypt(expect, cb)
	assert.Equal(t, expect, out)
}

func TestRoundTrip(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x77}
	cb := randBytes(t, 16)
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 100, 1000} {
		enc, err := New(block, cb, 4, 8, LittleEndian)
		require.NoError(t, err)
		dec, err := New(block, cb, 4, 8, LittleEndian)
		require.NoError(t, err)

		pt := randBytes(t, n)
		ct := make([]byte, n)
		require.NoError(t, enc.Encrypt(ct, pt))
		rt := make([]byte, n)
		require.NoError(t, dec.Decrypt(rt, ct))
		assert.Equal(t, pt, rt)
	}
}

func TestChunkingIndependence(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x11}
	cb := randBytes(t, 16)
	pt := randBytes(t, 337)

	whole, err := New(block, cb, 0, 16, BigEndian)
	require.NoError(t, err)
	expect := make([]byte, len(pt))
	require.NoError(t, whole.Encrypt(expect, pt))

	for _, chunk := range []int{1, 2, 3, 5, 7, 16, 17, 64} {
		c, err := New(block, cb, 0, 16, BigEndian)
		require.NoError(t, err)
		got := make([]byte, len(pt))
		for i := 0; i < len(pt); i += chunk {
			end := i + chunk
			if end > len(pt) {
				end = len(pt)
			}
			require.NoError(t, c.Encrypt(got[i:end], pt[i:end]))
		}
		assert.Equal(t, expect, got)
	}
}

func TestDeterminism(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0xc3}
	cb := unhex(t, "000102030405060708090a0bdeadbeef")
	for _, n := range []int{16, 17, 32} {
		first, err := New(block, cb, 12, 4, BigEndian)
		require.NoError(t, err)
		second, err := New(block, cb, 12, 4, BigEndian)
		require.NoError(t, err)

		a := make([]byte, n)
		b := make([]byte, n)
		require.NoError(t, first.Encrypt(a, make([]byte, n)))
		require.NoError(t, second.Encrypt(b, make([]byte, n)))
		assert.Equal(t, a, b)

		// Zero plaintext exposes the key stream: the first block is the
		// encryption of the initial counter block.
		expect := make([]byte, 16)
		block.Encrypt(expect, cb)
		assert.Equal(t, expect, a[:16])
	}
}

func TestCounterSequence(t *testing.T) {
	rec := &recordingCipher{stubCipher: stubCipher{bs: 16, pad: 0x9e}}
	cb := unhex(t, "a0a1a2a3a4a5a6a7a8a900000000b0b1")
	c, err := New(rec, cb, 10, 4, BigEndian)
	require.NoError(t, err)

	out := make([]byte, 3*16)
	require.NoError(t, c.Encrypt(out, make([]byte, 3*16)))
	require.Len(t, rec.inputs, 3)

	assert.Equal(t, unhex(t, "a0a1a2a3a4a5a6a7a8a900000000b0b1"), rec.inputs[0])
	assert.Equal(t, unhex(t, "a0a1a2a3a4a5a6a7a8a900000001b0b1"), rec.inputs[1])
	assert.Equal(t, unhex(t, "a0a1a2a3a4a5a6a7a8a900000002b0b1"), rec.inputs[2])
	assert.Equal(t, uint64(3), c.Blocks())
}

func TestCounterSequenceLittleEndian(t *testing.T) {
	rec := &recordingCipher{stubCipher: stubCipher{bs: 16, pad: 0x9e}}
	cb := unhex(t, "a0a1a2a3a4a5a6a7a8a9ff000000b0b1")
	c, err := New(rec, cb, 10, 4, LittleEndian)
	require.NoError(t, err)

	out := make([]byte, 2*16)
	require.NoError(t, c.Encrypt(out, make([]byte, 2*16)))
	require.Len(t, rec.inputs, 2)

	assert.Equal(t, unhex(t, "a0a1a2a3a4a5a6a7a8a9ff000000b0b1"), rec.inputs[0])
	assert.Equal(t, unhex(t, "a0a1a2a3a4a5a6a7a8a900010000b0b1"), rec.inputs[1])
}

// TestKnownAnswerAES128 checks the CTR-AES128 vectors from NIST SP 800-38A
// Appendix F.5.
func TestKnownAnswerAES128(t *testing.T) {
	block, err := aes.NewCipher(unhex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	require.NoError(t, err)
	iv := unhex(t, "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")
	pt := unhex(t, "6bc1bee22e409f96e93d7e117393172a"+
		"ae2d8a571e03ac9c9eb76fac45af8e51"+
		"30c81c46a35ce411e5fbc1191a0a52ef"+
		"f69f2445df4f9b17ad2b417be66c3710")
	ct := unhex(t, "874d6191b620e3261bef6864990db6ce"+
		"9806f66b7970fdff8617187bb9fffdff"+
		"5ae4df3edbd5d35e5b4f09020db03eab"+
		"1e031dda2fbe03d1792170a0f3009cee")

	enc, err := New(block, iv, 0, 16, BigEndian)
	require.NoError(t, err)
	got := make([]byte, len(pt))
	require.NoError(t, enc.Encrypt(got, pt))
	assert.Equal(t, ct, got)

	dec, err := New(block, iv, 0, 16, BigEndian)
	require.NoError(t, err)
	back := make([]byte, len(ct))
	require.NoError(t, dec.Decrypt(back, ct))
	assert.Equal(t, pt, back)
}

// TestMatchesStdlib confirms that a full-block big-endian counter produces
// exactly the stdlib crypto/cipher CTR key stream.
func TestMatchesStdlib(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		block, err := aes.NewCipher(randBytes(t, 16))
		require.NoError(t, err)
		iv := randBytes(t, 16)
		pt := randBytes(t, 1+trial*37)

		c, err := New(block, iv, 0, 16, BigEndian)
		require.NoError(t, err)
		got := make([]byte, len(pt))
		require.NoError(t, c.Encrypt(got, pt))

		expect := make([]byte, len(pt))
		cipher.NewCTR(block, iv).XORKeyStream(expect, pt)
		assert.Equal(t, expect, got)
	}
}

func TestZeroLengthNoop(t *testing.T) {
	c, err := New(stubCipher{bs: 16, pad: 0x01}, make([]byte, 16), 0, 16, BigEndian)
	require.NoError(t, err)
	require.NoError(t, c.Encrypt(nil, nil))
	assert.Equal(t, uint64(0), c.Blocks())
}

func TestEncryptShortOutput(t *testing.T) {
	c, err := New(stubCipher{bs: 16, pad: 0x01}, make([]byte, 16), 0, 16, BigEndian)
	require.NoError(t, err)
	err = c.Encrypt(make([]byte, 3), make([]byte, 4))
	assert.Equal(t, ErrShortOutput, err)
}

// TestWraparoundByteCounter exercises the smallest possible counter space: a
// one byte field allows exactly 255 key stream blocks before the incremented
// counter block returns to its initial value.
func TestWraparoundByteCounter(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x42}
	cb := randBytes(t, 16)

	c, err := New(block, cb, 15, 1, BigEndian)
	require.NoError(t, err)
	buf := make([]byte, 16)
	for i := 0; i < 255; i++ {
		require.NoError(t, c.Encrypt(buf, buf))
	}

	err = c.Encrypt(buf[:1], buf[:1])
	require.Equal(t, ErrKeyStreamReuse, err)

	// The failure is fatal and sticky.
	assert.Equal(t, ErrKeyStreamReuse, c.Encrypt(buf, buf))
	assert.Equal(t, ErrKeyStreamReuse, c.Encrypt(nil, nil))
}

// TestWraparoundSingleCall checks that a single oversized request fails at
// the block boundary where the counter wraps, not before and not after: with
// a one byte counter 255 blocks are available, so 4080 bytes succeed and 4081
// fail.
func TestWraparoundSingleCall(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x42}
	cb := randBytes(t, 16)

	ok, err := New(block, cb, 15, 1, LittleEndian)
	require.NoError(t, err)
	out := make([]byte, 255*16)
	assert.NoError(t, ok.Encrypt(out, make([]byte, 255*16)))

	bad, err := New(block, cb, 15, 1, LittleEndian)
	require.NoError(t, err)
	out = make([]byte, 255*16+1)
	assert.Equal(t, ErrKeyStreamReuse, bad.Encrypt(out, make([]byte, 255*16+1)))
}

// TestWraparoundAllBitsSet starts a two byte little-endian counter at the all
// ones value. The very first increment wraps the field to zero without error;
// the session fails only on the boundary where the counter block equals the
// initial block again, after the full 2^16 cycle.
func TestWraparoundAllBitsSet(t *testing.T) {
	rec := &recordingCipher{stubCipher: stubCipher{bs: 8, pad: 0x5a}}
	cb := unhex(t, "1020304050ffff60")

	c, err := New(rec, cb, 5, 2, LittleEndian)
	require.NoError(t, err)

	buf := make([]byte, 8)
	blocks := 1 << 16
	for i := 0; i < blocks-1; i++ {
		require.NoError(t, c.Encrypt(buf, buf))
	}

	// The field wrapped to zero on the first boundary.
	require.True(t, len(rec.inputs) >= 2)
	assert.Equal(t, unhex(t, "1020304050ffff60"), rec.inputs[0])
	assert.Equal(t, unhex(t, "1020304050000060"), rec.inputs[1])

	err = c.Encrypt(buf[:1], buf[:1])
	assert.Equal(t, ErrKeyStreamReuse, err)
	assert.Equal(t, uint64(blocks), c.Blocks())
}

func TestXORKeyStream(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x84}
	cb := randBytes(t, 16)
	pt := randBytes(t, 50)

	a, err := New(block, cb, 0, 16, BigEndian)
	require.NoError(t, err)
	b, err := New(block, cb, 0, 16, BigEndian)
	require.NoError(t, err)

	viaErr := make([]byte, len(pt))
	require.NoError(t, a.Encrypt(viaErr, pt))
	viaStream := make([]byte, len(pt))
	b.XORKeyStream(viaStream, pt)
	assert.Equal(t, viaErr, viaStream)
}

func TestXORKeyStreamPanics(t *testing.T) {
	block := stubCipher{bs: 16, pad: 0x84}
	c, err := New(block, randBytes(t, 16), 15, 1, BigEndian)
	require.NoError(t, err)

	buf := make([]byte, 255*16)
	c.XORKeyStream(buf, buf)
	assert.Panics(t, func() {
		c.XORKeyStream(buf[:1], buf[:1])
	})
}

func TestClose(t *testing.T) {
	cc := &closableCipher{stubCipher: stubCipher{bs: 16, pad: 0x21}}
	c, err := New(cc, make([]byte, 16), 0, 16, BigEndian)
	require.NoError(t, err)

	out := make([]byte, 40)
	require.NoError(t, c.Encrypt(out, make([]byte, 40)))

	require.NoError(t, c.Close())
	assert.Equal(t, 1, cc.closed)

	assert.Equal(t, ErrClosed, c.Encrypt(out, out))
	assert.Equal(t, ErrClosed, c.Close())
	assert.Equal(t, 1, cc.closed)
}

func TestCloseWithoutCloser(t *testing.T) {
	c, err := New(stubCipher{bs: 16, pad: 0x21}, make([]byte, 16), 0, 16, BigEndian)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.Equal(t, ErrClosed, c.Close())
}
