package chainmap

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when a required key or value is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned by Remove when the key is not in the map.
	ErrNotFound = errors.New("key not found")
)
