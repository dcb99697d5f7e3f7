package theory

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKey is returned when a key is not in the key table.
var ErrUnsupportedKey = errors.New("unsupported key")

// UnsupportedKeyError carries the key string the caller asked for.
type UnsupportedKeyError struct {
	Key string
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("unsupported key: %q", e.Key)
}

func (e *UnsupportedKeyError) Unwrap() error {
	return ErrUnsupportedKey
}

func newUnsupportedKeyError(key string) error {
	return &UnsupportedKeyError{Key: key}
}
