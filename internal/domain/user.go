// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const (
	MaxNameLen = 36
	MaxRoomLen = 36
)

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
	ErrRoomEmpty   = errors.New("room empty")
	ErrRoomTooLong = errors.New("room too long")
)

type UserID string

// User is the relay's view of one joined connection: who it is and which
// room it currently belongs to. At most one User exists per connection;
// re-joining replaces the record, it never merges.
type User struct {
	ID   UserID   `json:"id"`
	Name string   `json:"name"`
	Room RoomName `json:"room"`
}

// ValidName keeps construction checks out of the adapters.
func ValidName(name string) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	return nil
}

func ValidRoom(room string) error {
	if len(room) == 0 {
		return ErrRoomEmpty
	}
	if len(room) > MaxRoomLen {
		return ErrRoomTooLong
	}
	return nil
}
