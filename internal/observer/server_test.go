package observer

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

type staticSource struct {
	mu   sync.Mutex
	snap domain.Snapshot
}

func (s *staticSource) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *staticSource) set(snap domain.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.WSHandler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(v))
}

func TestWSHandler_HelloThenSnapshot(t *testing.T) {
	source := &staticSource{snap: domain.Snapshot{Tick: 42, Balance: 7, FloorCount: 1}}
	srv := NewServer(source, nil, Config{TickRateHz: 60})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)
	assert.Equal(t, MsgTypeHello, hello.Type)
	assert.Equal(t, ProtocolVersion, hello.ProtocolVersion)
	assert.Equal(t, uint64(42), hello.Tick)
	assert.Equal(t, 60, hello.TickRateHz)
	assert.NotEmpty(t, hello.SessionID)

	var snap SnapshotMsg
	readJSON(t, conn, &snap)
	assert.Equal(t, MsgTypeSnapshot, snap.Type)
	assert.Equal(t, 7, snap.Snapshot.Balance)
	assert.Equal(t, 1, srv.SessionCount())
}

func TestBroadcast_ReachesSession(t *testing.T) {
	source := &staticSource{}
	srv := NewServer(source, nil, Config{})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)
	var initial SnapshotMsg
	readJSON(t, conn, &initial)

	srv.Broadcast(context.Background(), domain.Snapshot{Tick: 99, FloorCount: 3})

	var got SnapshotMsg
	readJSON(t, conn, &got)
	assert.Equal(t, uint64(99), got.Snapshot.Tick)
	assert.Equal(t, 3, got.Snapshot.FloorCount)
}

func TestWSHandler_InputReachesLatch(t *testing.T) {
	latch := engine.NewInputLatch()
	srv := NewServer(&staticSource{}, latch, Config{})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)

	bad := InputMsg{Type: MsgTypeInput, ProtocolVersion: ProtocolVersion, Movement: MovementInput{X: 5}}
	require.NoError(t, conn.WriteJSON(bad))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	good := InputMsg{Type: MsgTypeInput, ProtocolVersion: ProtocolVersion, Movement: MovementInput{X: 1, Z: -0.5}, Yaw: 1.5}
	require.NoError(t, conn.WriteJSON(good))

	require.Eventually(t, func() bool {
		return latch.Latest().Yaw == 1.5
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.Vec3{X: 1, Z: -0.5}, latch.CurrentMovementVector())
}

func TestWSHandler_SessionLeavesOnClose(t *testing.T) {
	srv := NewServer(&staticSource{}, nil, Config{})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)
	require.Equal(t, 1, srv.SessionCount())

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWSHandler_PingsKeepReadOnlyClientAlive(t *testing.T) {
	srv := NewServer(&staticSource{}, nil, Config{PongWait: 100 * time.Millisecond, PingInterval: 30 * time.Millisecond})
	conn := dial(t, srv)

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// several read windows pass without the client sending a data frame
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 1, srv.SessionCount())
	assert.GreaterOrEqual(t, pings.Load(), int32(3))
}

func TestWSHandler_DropsClientThatNeverAnswers(t *testing.T) {
	srv := NewServer(&staticSource{}, nil, Config{PongWait: 100 * time.Millisecond, PingInterval: 30 * time.Millisecond})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)
	require.Equal(t, 1, srv.SessionCount())

	// no reads from here on, so pings go unanswered
	require.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewServer_LivenessDefaults(t *testing.T) {
	srv := NewServer(&staticSource{}, nil, Config{})
	assert.Equal(t, DefaultPongWait, srv.cfg.PongWait)
	assert.Less(t, srv.cfg.PingInterval, srv.cfg.PongWait)

	srv = NewServer(&staticSource{}, nil, Config{PongWait: time.Second, PingInterval: 2 * time.Second})
	assert.Equal(t, 900*time.Millisecond, srv.cfg.PingInterval)
}

func TestRun_BroadcastsUntilCancelled(t *testing.T) {
	source := &staticSource{}
	srv := NewServer(source, nil, Config{Interval: 10 * time.Millisecond})
	conn := dial(t, srv)

	var hello HelloMsg
	readJSON(t, conn, &hello)
	var initial SnapshotMsg
	readJSON(t, conn, &initial)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	source.set(domain.Snapshot{Tick: 5})
	require.Eventually(t, func() bool {
		var msg SnapshotMsg
		readJSON(t, conn, &msg)
		return msg.Snapshot.Tick == 5
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestInputMsg_Validation(t *testing.T) {
	var msg InputMsg
	require.NoError(t, json.Unmarshal([]byte(`{"type":"INPUT","protocol_version":1,"movement":{"x":0.5,"y":0,"z":-1},"yaw":3}`), &msg))
	require.NoError(t, validation.Struct(msg))
	assert.Equal(t, domain.InputSnapshot{Movement: domain.Vec3{X: 0.5, Z: -1}, Yaw: 3}, msg.Snapshot())

	tests := []struct {
		name  string
		msg   InputMsg
		field string
	}{
		{"wrong type", InputMsg{Type: MsgTypeHello, ProtocolVersion: ProtocolVersion}, "type"},
		{"wrong version", InputMsg{Type: MsgTypeInput, ProtocolVersion: 2}, "protocol_version"},
		{"movement out of range", InputMsg{Type: MsgTypeInput, ProtocolVersion: ProtocolVersion, Movement: MovementInput{Y: -1.5}}, "movement.y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validation.FormatFieldErrors(validation.Struct(tt.msg))
			assert.Contains(t, fields, tt.field)
		})
	}
}
