package core

import (
	"time"

	"github.com/roomcast/roomcast/internal/domain"
)

// Outbound event shapes. Every frame carries a "type" discriminator so a
// single websocket channel can multiplex them.

type MessageEvent struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}

type UserListEvent struct {
	Type  string        `json:"type"`
	Users []domain.User `json:"users"`
}

type RoomListEvent struct {
	Type  string            `json:"type"`
	Rooms []domain.RoomName `json:"rooms"`
}

type ActivityEvent struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewMessage stamps the payload with the server clock; the server is the
// single source of truth for message times.
func NewMessage(name, text string, now time.Time) MessageEvent {
	return MessageEvent{
		Type: "message",
		Name: name,
		Text: text,
		Time: now.Format("15:04:05"),
	}
}

func NewUserList(users []domain.User) UserListEvent {
	return UserListEvent{Type: "userList", Users: users}
}

func NewRoomList(rooms []domain.RoomName) RoomListEvent {
	return RoomListEvent{Type: "roomList", Rooms: rooms}
}

func NewActivity(name string) ActivityEvent {
	return ActivityEvent{Type: "activity", Name: name}
}
