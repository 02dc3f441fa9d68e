// Package buf contains helpers for manipulating byte buffers.
package buf

// Consume n bytes of b and return the rest.
func Consume(b []byte, n int) ([]byte, []byte) {
	return b[:n], b[n:]
}

// XOR sets dst[i] = a[i] ^ b[i] for as many bytes as all three slices allow,
// returning the number of bytes written.
func XOR(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}

// Zero clears every byte of b.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
