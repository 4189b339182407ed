package services

import (
	"sort"
	"sync"
)

// userLocks hands out one mutex per user id.
type userLocks struct {
	mu sync.Map
}

func (l *userLocks) get(userID string) *sync.Mutex {
	mu, _ := l.mu.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// lock acquires the mutexes of all given users in id order and returns
// the function releasing them.
func (l *userLocks) lock(userIDs ...string) func() {
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)

	held := make([]*sync.Mutex, 0, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		mu := l.get(id)
		mu.Lock()
		held = append(held, mu)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
