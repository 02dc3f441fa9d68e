package keystream

// ByteOrder selects the byte order of the incrementing counter field. The
// zero value is BigEndian, matching NIST SP 800-38A and the stdlib CTR mode.
type ByteOrder int

const (
	// BigEndian counters treat the lowest-addressed byte of the field as most
	// significant.
	BigEndian ByteOrder = iota

	// LittleEndian counters treat the lowest-addressed byte of the field as
	// least significant.
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	}
	return "unknown"
}

// incrementFunc adds one to a counter field in place, wrapping silently on
// overflow of the field. Selected once at construction.
type incrementFunc func(counter []byte)

// incLE increments a little-endian counter field. The carry is propagated
// from the lowest-addressed byte upwards and stops at the first byte that
// does not wrap to zero.
func incLE(counter []byte) {
	for i := 0; i < len(counter); i++ {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}

// incBE increments a big-endian counter field. Same carry rule as incLE, but
// walking from the highest-addressed byte down.
func incBE(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}

// incrementer resolves the increment strategy for a byte order.
func incrementer(order ByteOrder) (incrementFunc, bool) {
	switch order {
	case BigEndian:
		return incBE, true
	case LittleEndian:
		return incLE, true
	}
	return nil, false
}
