package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/domain"
)

// Store is the process-wide membership registry: connection id → (name, room).
// It is the only owner of User records; every method returns copies, so no
// caller ever holds a reference into the map. All five operations serialize
// on one mutex: at most one record per connection, a record's room is never
// empty, and the derived room list always matches the current records.
type Store struct {
	mu    sync.RWMutex
	users map[core.ConnID]domain.User
}

func NewStore() *Store {
	return &Store{users: make(map[core.ConnID]domain.User)}
}

// Activate inserts or replaces the record for id. Replacement is one logical
// step under the lock: the old record is never observable alongside the new
// one. Always succeeds.
func (s *Store) Activate(id core.ConnID, name string, room domain.RoomName) domain.User {
	u := domain.User{ID: domain.UserID(id), Name: name, Room: room}
	s.mu.Lock()
	s.users[id] = u
	s.mu.Unlock()
	log.Info().Str("module", "app.store").Str("conn", string(id)).Str("name", name).Str("room", string(room)).Msg("activated")
	return u
}

// Deactivate removes the record for id. Removing an absent id is a no-op,
// not an error: disconnect-before-join is a normal case.
func (s *Store) Deactivate(id core.ConnID) {
	s.mu.Lock()
	_, ok := s.users[id]
	delete(s.users, id)
	s.mu.Unlock()
	if ok {
		log.Info().Str("module", "app.store").Str("conn", string(id)).Msg("deactivated")
	}
}

// Lookup returns the current record for id. A false result is an expected
// state (e.g. a message racing a disconnect), never a fault.
func (s *Store) Lookup(id core.ConnID) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// MembersOf snapshots all users currently in room; empty for unknown rooms.
func (s *Store) MembersOf(room domain.RoomName) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.Room == room {
			out = append(out, u)
		}
	}
	return out
}

// ActiveRooms derives the distinct room names across all current users.
// A room exists exactly while it has members, so this never contains a
// stale or empty room.
func (s *Store) ActiveRooms() []domain.RoomName {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[domain.RoomName]struct{}, len(s.users))
	out := make([]domain.RoomName, 0, len(s.users))
	for _, u := range s.users {
		if _, ok := seen[u.Room]; ok {
			continue
		}
		seen[u.Room] = struct{}{}
		out = append(out, u.Room)
	}
	return out
}
