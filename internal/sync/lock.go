package sync

import stdsync "sync"

// noteLocks serialises work per note ID. Entries are dropped once no caller holds them.
type noteLocks struct {
	mu    stdsync.Mutex
	locks map[string]*noteLock
}

type noteLock struct {
	stdsync.Mutex
	refs int
}

// lock blocks until id is free and returns its unlock func.
func (k *noteLocks) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*noteLock)
	}
	nl, ok := k.locks[id]
	if !ok {
		nl = &noteLock{}
		k.locks[id] = nl
	}
	nl.refs++
	k.mu.Unlock()

	nl.Lock()
	return func() {
		nl.Unlock()
		k.mu.Lock()
		nl.refs--
		if nl.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
