package kv

// MemoryStore keeps values in a map; nothing survives the process
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
