package accountstore

import "sort"

// MemoryStore keeps the account set in a plain map. The engine is the
// sole writer, so there is no internal locking.
type MemoryStore struct {
	entries map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(address string) ([]byte, error) {
	data, ok := s.entries[address]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Upsert(address string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[address] = stored
	return nil
}

func (s *MemoryStore) Delete(address string) error {
	delete(s.entries, address)
	return nil
}

func (s *MemoryStore) Traverse(fn func(address string, data []byte) error) error {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, s.entries[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.entries = nil
	return nil
}
