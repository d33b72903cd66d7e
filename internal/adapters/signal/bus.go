package signal

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/domain"
	"github.com/roomcast/roomcast/internal/metrics"
)

// Bus relays room-scoped frames between relay instances over redis pub/sub.
// Only chat and activity frames travel the bus: user and room lists are
// computed from each instance's own membership store, which is authoritative
// only for its own connections.
type Bus struct {
	rdb    *redis.Client
	origin string
}

type busMessage struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

// NewBus connects to redis and verifies connectivity.
func NewBus(ctx context.Context, addr string, db int) (*Bus, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Bus{rdb: rdb, origin: uuid.NewString()}, nil
}

// Publish fans a frame out to peer instances. Fire-and-forget, same as local
// delivery: a publish failure is logged and dropped.
func (b *Bus) Publish(room domain.RoomName, frame core.Frame) {
	raw, _ := json.Marshal(busMessage{Origin: b.origin, Room: string(room), Payload: json.RawMessage(frame)})
	if err := b.rdb.Publish(context.Background(), channel(string(room)), raw).Err(); err != nil {
		log.Warn().Err(err).Str("module", "signal.bus").Str("room", string(room)).Msg("publish failed")
		return
	}
	metrics.BusFrames.WithLabelValues("out").Inc()
}

// Run subscribes to all room channels and feeds peer frames into the local
// hub until ctx is canceled.
func (b *Bus) Run(ctx context.Context, hub *Hub) {
	pubsub := b.rdb.PSubscribe(ctx, channel("*"))
	ch := pubsub.Channel()
	log.Info().Str("module", "signal.bus").Msg("bus subscribed")

	for {
		select {
		case <-ctx.Done():
			_ = pubsub.Close()
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var bm busMessage
			if err := json.Unmarshal([]byte(msg.Payload), &bm); err != nil {
				log.Warn().Err(err).Str("module", "signal.bus").Msg("bad bus payload")
				continue
			}
			if bm.Origin == b.origin || bm.Room == "" {
				continue
			}
			metrics.BusFrames.WithLabelValues("in").Inc()
			hub.deliverRoom(domain.RoomName(bm.Room), "", core.Frame(bm.Payload))
		}
	}
}

// Close shuts down the redis connection.
func (b *Bus) Close() { _ = b.rdb.Close() }

// channel namespacing for room pub/sub
func channel(room string) string { return "room:" + room }
