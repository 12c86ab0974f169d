// Package locker provides per-key mutual exclusion.
// A KeyedMutex serializes read-modify-write sequences against a single
// entity (an order id, a product name) without blocking operations on
// unrelated entities.
package locker

import "sync"

// KeyedMutex maintains one mutex per key.
// Mutexes are created lazily on first use and retained for the lifetime
// of the KeyedMutex; the set of entities in this system is bounded by
// the catalog and active orders, so entries are not evicted.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
// Unlocking a key that was never locked panics, same as sync.Mutex.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
