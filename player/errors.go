package player

import (
	"errors"
	"fmt"
)

var (
	ErrFileUnreadable    = errors.New("file unreadable")
	ErrUnsupportedFormat = errors.New("unsupported or corrupt format")
	ErrOutputUnavailable = errors.New("audio output unavailable")
)

// LoadError reports why a track could not be loaded. Kind is one of the
// sentinel errors above so callers can use errors.Is.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func loadError(path string, kind, err error) error {
	return &LoadError{Path: path, Kind: kind, Err: err}
}
