package notification

import (
	"sync"
)

// maxPerUser caps the per-user backlog; oldest entries are dropped first.
// The store only backs deployments without Redis, where a restart loses
// the backlog.
const maxPerUser = 100

type Store struct {
	mu    sync.Mutex
	byUID map[string][]Notification
}

func NewStore() *Store {
	return &Store{byUID: make(map[string][]Notification)}
}

func (s *Store) Append(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.byUID[n.UserID], n)
	if len(list) > maxPerUser {
		list = list[len(list)-maxPerUser:]
	}
	s.byUID[n.UserID] = list
}

// ListForUser returns notifications newest first.
func (s *Store) ListForUser(userID string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUID[userID]
	out := make([]Notification, len(list))
	for i, n := range list {
		out[len(list)-1-i] = n
	}
	return out
}

func (s *Store) MarkAllRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := 0
	list := s.byUID[userID]
	for i := range list {
		if !list[i].Read {
			list[i].Read = true
			marked++
		}
	}
	return marked
}

func (s *Store) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.byUID[userID] {
		if !n.Read {
			count++
		}
	}
	return count
}
