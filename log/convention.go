package log

import "encoding/hex"

// ForComponent adds a tag to the logger labelling the component the logger is
// for.
func ForComponent(logger Logger, name string) Logger {
	return logger.With("component", name)
}

// ForProfile adds a tag to the logger labelling the cipher profile in use.
func ForProfile(logger Logger, name string) Logger {
	return logger.With("profile", name)
}

func WithBytes(logger Logger, key string, data []byte) Logger {
	return logger.With(key, hex.EncodeToString(data))
}

// WithTags adds every tag in the map to the logger.
func WithTags(logger Logger, tags map[string]string) Logger {
	for k, v := range tags {
		logger = logger.With(k, v)
	}
	return logger
}

// Err logs an error with an additional message.
func Err(logger Logger, err error, msg string) {
	logger.With("err", err.Error()).Error(msg)
}
