package core

import "github.com/roomcast/roomcast/internal/domain"

// Frame is a marshaled outbound payload.
type Frame []byte

// ConnID is the transport-assigned identifier of one connection, unique for
// the lifetime of that connection.
type ConnID string

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Broadcaster is the narrow surface the coordinator uses to reach clients.
// The transport adapter owns the room→connection group mapping; the
// coordinator only ever names audiences through this interface.
type Broadcaster interface {
	Subscribe(id ConnID, room domain.RoomName)
	Unsubscribe(id ConnID, room domain.RoomName)

	// Delivery is fire-and-forget: a failed send to one member never blocks
	// or rolls back delivery to others.
	ToConn(id ConnID, v any)
	ToRoom(room domain.RoomName, v any)
	ToRoomExcept(room domain.RoomName, except ConnID, v any)
	ToAll(v any)
}
