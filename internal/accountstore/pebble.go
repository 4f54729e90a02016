package accountstore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble/v2"
)

// PebbleStore backs the account set with an on-disk pebble database so
// replay over the full account set stays memory-bounded. Pebble
// iterates in byte order, which for the plain address keys used here is
// exactly the lexicographic traversal order the engine requires.
type PebbleStore struct {
	db *pebble.DB
}

var _ Store = (*PebbleStore)(nil)

func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(address string) ([]byte, error) {
	data, closer, err := s.db.Get([]byte(address))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pebble get %s: %w", address, err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	closer.Close()
	return out, nil
}

func (s *PebbleStore) Upsert(address string, data []byte) error {
	if err := s.db.Set([]byte(address), data, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble set %s: %w", address, err)
	}
	return nil
}

func (s *PebbleStore) Delete(address string) error {
	if err := s.db.Delete([]byte(address), pebble.NoSync); err != nil {
		return fmt.Errorf("pebble delete %s: %w", address, err)
	}
	return nil
}

func (s *PebbleStore) Traverse(fn func(address string, data []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("pebble iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		data := make([]byte, len(iter.Value()))
		copy(data, iter.Value())
		if err := fn(string(iter.Key()), data); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
