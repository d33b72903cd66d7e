package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/domain"
)

// SystemSender authors every server-originated message, departure notices
// included.
const SystemSender = "Admin"

// Coordinator translates transport events into store mutations and outbound
// broadcasts. It holds no state of its own: the store is the single source
// of truth, and every broadcast payload is computed from a store snapshot
// taken after the mutation for that event has fully applied.
type Coordinator struct {
	Store *Store
	Out   core.Broadcaster

	// Clock is swappable in tests; nil means time.Now.
	Clock func() time.Time
}

func NewCoordinator(store *Store, out core.Broadcaster) *Coordinator {
	return &Coordinator{Store: store, Out: out}
}

func (c *Coordinator) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// OnConnect greets the new connection. Nothing is stored until it joins
// a room.
func (c *Coordinator) OnConnect(id core.ConnID) {
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("connected")
	c.Out.ToConn(id, core.NewMessage(SystemSender, "Welcome to Chat App !", c.now()))
}

// OnEnterRoom handles first joins and room switches. The prior room has to
// be captured before Activate: afterwards the old value is gone from the
// store.
func (c *Coordinator) OnEnterRoom(id core.ConnID, name string, room domain.RoomName) {
	prev, hadPrev := c.Store.Lookup(id)
	switching := hadPrev && prev.Room != room

	if switching {
		c.Out.Unsubscribe(id, prev.Room)
		c.Out.ToRoom(prev.Room, core.NewMessage(SystemSender, name+" has left the room", c.now()))
	}

	user := c.Store.Activate(id, name, room)

	// The prior room's list can only be refreshed after the state update,
	// otherwise it would still contain the mover.
	if switching {
		c.Out.ToRoom(prev.Room, core.NewUserList(c.Store.MembersOf(prev.Room)))
	}

	c.Out.Subscribe(id, user.Room)
	c.Out.ToConn(id, core.NewMessage(SystemSender, fmt.Sprintf("You have joined the %s Chat room!", user.Room), c.now()))
	c.Out.ToRoomExcept(user.Room, id, core.NewMessage(SystemSender, user.Name+" has joined the room", c.now()))
	c.Out.ToRoom(user.Room, core.NewUserList(c.Store.MembersOf(user.Room)))
	c.Out.ToAll(core.NewRoomList(c.Store.ActiveRooms()))

	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Str("name", name).Str("room", string(room)).Bool("switched", switching).Msg("entered room")
}

// OnDisconnect announces the departure to the former room, if there was one.
// Disconnect before ever joining is silent.
func (c *Coordinator) OnDisconnect(id core.ConnID) {
	user, ok := c.Store.Lookup(id)
	c.Store.Deactivate(id)
	if !ok {
		log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("disconnected before join")
		return
	}

	c.Out.ToRoom(user.Room, core.NewMessage(SystemSender, user.Name+" has left the room", c.now()))
	c.Out.ToRoom(user.Room, core.NewUserList(c.Store.MembersOf(user.Room)))
	c.Out.ToAll(core.NewRoomList(c.Store.ActiveRooms()))
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Str("room", string(user.Room)).Msg("disconnected")
}

// OnMessage echoes a chat line to the sender's whole room, sender included,
// with the server timestamp. A sender with no active membership (race with
// disconnect or leave) is dropped silently.
func (c *Coordinator) OnMessage(id core.ConnID, name, text string) {
	user, ok := c.Store.Lookup(id)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("conn", string(id)).Msg("message from roomless conn dropped")
		return
	}
	c.Out.ToRoom(user.Room, core.NewMessage(name, text, c.now()))
}

// OnActivity relays a transient typing signal to everyone else in the room.
func (c *Coordinator) OnActivity(id core.ConnID, name string) {
	user, ok := c.Store.Lookup(id)
	if !ok {
		return
	}
	c.Out.ToRoomExcept(user.Room, id, core.NewActivity(name))
}
