package highscore

import (
	"fmt"
	"io"
)

// Storage backends accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store for backend at path. The closer releases the
// backend's resources and is never nil.
func Open(backend, path string) (Store, io.Closer, error) {
	switch backend {
	case BackendJSON, "":
		return NewFileStore(path), nopCloser{}, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown high score backend %q", backend)
	}
}
