package clientctx

// MemStore is an in-memory Store for tests and dry runs. Records are
// deep-copied on the way in and out so callers cannot alias stored
// state.
type MemStore struct {
	records map[string]*ClientContext
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]*ClientContext)}
}

// Get implements Store.
func (s *MemStore) Get(address string) (*ClientContext, bool, error) {
	record, ok := s.records[storeKey(address)]
	if !ok {
		return nil, false, nil
	}
	return record.Clone(), true, nil
}

// Put implements Store.
func (s *MemStore) Put(address string, record *ClientContext) error {
	s.records[storeKey(address)] = record.Clone()
	return nil
}

// Len reports how many records the store holds.
func (s *MemStore) Len() int { return len(s.records) }
