package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no stored instance matches the requested id.
// Callers treat it as a client error, not an internal fault.
var ErrNotFound = errors.New("instance not found")

// Store resolves stored instances by id from a flat directory of
// <id>.json / <id>.dzn files, preferring the JSON form.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads and parses the stored instance with the given id.
func (s *Store) Load(id string) (Raw, error) {
	if id == "" || id != filepath.Base(id) || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}

	for _, ext := range []string{".json", ".dzn"} {
		path := filepath.Join(s.dir, id+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read stored instance %s: %w", id, err)
		}
		return Parse(data, id+ext)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
