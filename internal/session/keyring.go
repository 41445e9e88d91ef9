package session

import "sync"

// MemoryKeyring is a process-local Keyring. Used in tests and wherever
// no platform secure store is wired in.
type MemoryKeyring struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKeyring() *MemoryKeyring {
	return &MemoryKeyring{values: map[string]string{}}
}

func (k *MemoryKeyring) Get(key string) (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.values[key], nil
}

func (k *MemoryKeyring) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
	return nil
}

func (k *MemoryKeyring) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.values, key)
	return nil
}
