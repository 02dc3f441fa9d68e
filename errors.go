package keystream

import "errors"

var (
	// ErrMissingCipher occurs when a Cipher is constructed without a block
	// cipher.
	ErrMissingCipher = errors.New("missing block cipher")

	// ErrCounterBlockSize occurs when the initial counter block is not exactly
	// one cipher block long.
	ErrCounterBlockSize = errors.New("counter block length must equal cipher block size")

	// ErrCounterLength occurs when the incrementing counter field is declared
	// empty.
	ErrCounterLength = errors.New("counter length must be at least one byte")

	// ErrCounterBounds occurs when the counter field does not fit inside the
	// counter block.
	ErrCounterBounds = errors.New("counter field exceeds block bounds")

	// ErrCounterValue occurs when an initial counter value does not fit in the
	// counter field.
	ErrCounterValue = errors.New("initial value does not fit in counter field")

	// ErrByteOrder occurs when a ByteOrder is neither BigEndian nor
	// LittleEndian.
	ErrByteOrder = errors.New("unknown byte order")

	// ErrShortOutput occurs when the output buffer passed to Encrypt or
	// Decrypt is shorter than the input.
	ErrShortOutput = errors.New("output buffer shorter than input")

	// ErrKeyStreamReuse occurs when the counter block returns to its initial
	// value, meaning any further output would repeat key stream bytes already
	// handed out under the same key. The failure is fatal to the session: the
	// caller must discard it and re-key with a fresh counter block.
	ErrKeyStreamReuse = errors.New("key stream reuse: counter block wrapped to initial value")

	// ErrClosed occurs when a Cipher is used after Close.
	ErrClosed = errors.New("cipher is closed")
)
