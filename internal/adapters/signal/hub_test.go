package signal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/roomcast/roomcast/internal/core"
)

type fakeConn struct {
	frames []core.Frame
	fail   bool
}

func (f *fakeConn) TrySend(frame core.Frame) error {
	if f.fail {
		return errors.New("backpressure")
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) Close() {}

func lastType(t *testing.T, f *fakeConn) string {
	t.Helper()
	if len(f.frames) == 0 {
		t.Fatal("no frames delivered")
	}
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(f.frames[len(f.frames)-1], &env); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	return env.Type
}

func TestToRoomReachesOnlySubscribers(t *testing.T) {
	h := NewHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Register("c", c)
	h.Subscribe("a", "general")
	h.Subscribe("b", "general")
	h.Subscribe("c", "random")

	h.ToRoom("general", core.NewActivity("Alice"))

	if len(a.frames) != 1 || len(b.frames) != 1 {
		t.Fatalf("general members got %d/%d frames, want 1/1", len(a.frames), len(b.frames))
	}
	if len(c.frames) != 0 {
		t.Fatal("frame leaked into another room")
	}
	if got := lastType(t, a); got != "activity" {
		t.Fatalf("frame type = %q", got)
	}
}

func TestToRoomExceptSkipsSender(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Subscribe("a", "general")
	h.Subscribe("b", "general")

	h.ToRoomExcept("general", "a", core.NewActivity("Alice"))

	if len(a.frames) != 0 {
		t.Fatal("sender received its own activity")
	}
	if len(b.frames) != 1 {
		t.Fatalf("other member got %d frames, want 1", len(b.frames))
	}
}

func TestToAllIgnoresRooms(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Subscribe("a", "general")
	// b never joined a room but must still get global broadcasts

	h.ToAll(core.NewRoomList(nil))

	if len(a.frames) != 1 || len(b.frames) != 1 {
		t.Fatalf("global broadcast reached %d/%d, want 1/1", len(a.frames), len(b.frames))
	}
	if got := lastType(t, b); got != "roomList" {
		t.Fatalf("frame type = %q", got)
	}
}

func TestToConnTargetsOne(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)

	h.ToConn("a", core.NewActivity("x"))

	if len(a.frames) != 1 || len(b.frames) != 0 {
		t.Fatalf("targeted send reached %d/%d", len(a.frames), len(b.frames))
	}
	// unknown target is a silent drop
	h.ToConn("ghost", core.NewActivity("x"))
}

func TestUnsubscribeMovesGroup(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}
	h.Register("a", a)
	h.Subscribe("a", "general")
	h.Unsubscribe("a", "general")
	h.Subscribe("a", "random")

	if got := h.Subscribers("general"); len(got) != 0 {
		t.Fatalf("general still has subscribers: %v", got)
	}
	if got := h.Subscribers("random"); len(got) != 1 || got[0] != "a" {
		t.Fatalf("random subscribers = %v", got)
	}
}

func TestUnregisterRemovesEverywhere(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Subscribe("a", "general")
	h.Subscribe("b", "general")

	h.Unregister("a")
	h.Unregister("a") // second time must be harmless

	h.ToRoom("general", core.NewActivity("x"))
	h.ToAll(core.NewRoomList(nil))

	if len(a.frames) != 0 {
		t.Fatal("unregistered conn still receiving")
	}
	if len(b.frames) != 2 {
		t.Fatalf("remaining conn got %d frames, want 2", len(b.frames))
	}
}

func TestDroppedSendDoesNotBlockOthers(t *testing.T) {
	h := NewHub()
	slow := &fakeConn{fail: true}
	ok := &fakeConn{}
	h.Register("slow", slow)
	h.Register("ok", ok)
	h.Subscribe("slow", "general")
	h.Subscribe("ok", "general")

	h.ToRoom("general", core.NewActivity("x"))

	if len(ok.frames) != 1 {
		t.Fatalf("healthy member got %d frames, want 1", len(ok.frames))
	}
}

func TestRelayableFrames(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{core.NewMessage("a", "b", time.Now()), true},
		{core.NewActivity("a"), true},
		{core.NewUserList(nil), false},
		{core.NewRoomList(nil), false},
	}
	for _, tc := range cases {
		if got := relayable(tc.v); got != tc.want {
			t.Fatalf("relayable(%T) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
