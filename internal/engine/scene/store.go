package scene

// Store is the per-scene key/value data store. Scenes use it to share
// state between hooks and components without reaching into each other.
type Store struct {
	values map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value any) {
	s.values[key] = value
}

// Get returns the value stored under key, or nil.
func (s *Store) Get(key string) any {
	return s.values[key]
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Remove deletes key from the store.
func (s *Store) Remove(key string) {
	delete(s.values, key)
}

// Merge copies every entry of values into the store.
func (s *Store) Merge(values map[string]any) {
	for k, v := range values {
		s.values[k] = v
	}
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.values)
}
