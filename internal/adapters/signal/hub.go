package signal

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/domain"
	"github.com/roomcast/roomcast/internal/metrics"
)

// Hub owns the transport-side group state: every live connection plus an
// explicit room → subscriber mapping. The coordinator addresses audiences
// only through core.Broadcaster; it never sees a connection handle.
type Hub struct {
	mu    sync.RWMutex
	conns map[core.ConnID]core.SignalConnection
	rooms map[domain.RoomName]map[core.ConnID]struct{}

	// bus, when non-nil, relays room-scoped chat/activity frames to peer
	// instances. Lists stay local, see Bus docs.
	bus *Bus
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[core.ConnID]core.SignalConnection),
		rooms: make(map[domain.RoomName]map[core.ConnID]struct{}),
	}
}

// UseBus attaches the cross-instance relay. Call before serving traffic.
func (h *Hub) UseBus(b *Bus) { h.bus = b }

func (h *Hub) Register(id core.ConnID, conn core.SignalConnection) {
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	metrics.ActiveConnections.Inc()
	log.Info().Str("module", "signal.hub").Str("conn", string(id)).Msg("registered")
}

// Unregister drops the connection from the all-connections set and from any
// room group. Safe to call for ids that were never registered.
func (h *Hub) Unregister(id core.ConnID) {
	h.mu.Lock()
	_, ok := h.conns[id]
	delete(h.conns, id)
	for name, members := range h.rooms {
		delete(members, id)
		if len(members) == 0 {
			delete(h.rooms, name)
		}
	}
	h.mu.Unlock()
	if ok {
		metrics.ActiveConnections.Dec()
		log.Info().Str("module", "signal.hub").Str("conn", string(id)).Msg("unregistered")
	}
}

func (h *Hub) Subscribe(id core.ConnID, room domain.RoomName) {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[core.ConnID]struct{})
		h.rooms[room] = members
	}
	members[id] = struct{}{}
	h.mu.Unlock()
	log.Info().Str("module", "signal.hub").Str("conn", string(id)).Str("room", string(room)).Msg("subscribed")
}

func (h *Hub) Unsubscribe(id core.ConnID, room domain.RoomName) {
	h.mu.Lock()
	if members, ok := h.rooms[room]; ok {
		delete(members, id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
	log.Info().Str("module", "signal.hub").Str("conn", string(id)).Str("room", string(room)).Msg("unsubscribed")
}

// Subscribers snapshots the ids currently in a room's delivery group.
func (h *Hub) Subscribers(room domain.RoomName) []core.ConnID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]core.ConnID, 0, len(h.rooms[room]))
	for id := range h.rooms[room] {
		out = append(out, id)
	}
	return out
}

func (h *Hub) ToConn(id core.ConnID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	h.mu.RLock()
	conn := h.conns[id]
	h.mu.RUnlock()
	if conn == nil {
		metrics.FramesDropped.Inc()
		return
	}
	h.send(id, conn, frame)
}

func (h *Hub) ToRoom(room domain.RoomName, v any) {
	h.toRoom(room, "", v)
}

func (h *Hub) ToRoomExcept(room domain.RoomName, except core.ConnID, v any) {
	h.toRoom(room, except, v)
}

func (h *Hub) ToAll(v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	h.mu.RLock()
	targets := make(map[core.ConnID]core.SignalConnection, len(h.conns))
	for id, conn := range h.conns {
		targets[id] = conn
	}
	h.mu.RUnlock()
	for id, conn := range targets {
		h.send(id, conn, frame)
	}
}

func (h *Hub) toRoom(room domain.RoomName, except core.ConnID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	h.deliverRoom(room, except, frame)
	if h.bus != nil && relayable(v) {
		h.bus.Publish(room, frame)
	}
}

// deliverRoom fans a frame out to the local subscribers of a room. Also the
// entry point for frames arriving from the bus.
func (h *Hub) deliverRoom(room domain.RoomName, except core.ConnID, frame core.Frame) {
	h.mu.RLock()
	targets := make(map[core.ConnID]core.SignalConnection, len(h.rooms[room]))
	for id := range h.rooms[room] {
		if id == except {
			continue
		}
		targets[id] = h.conns[id]
	}
	h.mu.RUnlock()
	for id, conn := range targets {
		if conn == nil {
			metrics.FramesDropped.Inc()
			continue
		}
		h.send(id, conn, frame)
	}
}

func (h *Hub) send(id core.ConnID, conn core.SignalConnection, frame core.Frame) {
	if err := conn.TrySend(frame); err != nil {
		metrics.FramesDropped.Inc()
		log.Warn().Err(err).Str("module", "signal.hub").Str("conn", string(id)).Msg("send dropped")
		return
	}
	metrics.FramesSent.Inc()
}

// relayable limits the bus to chat and activity frames. Membership lists are
// derived from this instance's own store and would be wrong on a peer.
func relayable(v any) bool {
	switch v.(type) {
	case core.MessageEvent, core.ActivityEvent:
		return true
	}
	return false
}

func marshal(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Msg("marshal outbound frame")
		return nil, false
	}
	return b, true
}
