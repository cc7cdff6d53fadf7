// Package observer streams game snapshots to websocket clients and accepts
// their movement input.
package observer

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/metrics"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// SnapshotSource provides the state observers render
type SnapshotSource interface {
	Snapshot() domain.Snapshot
}

// InputSink receives client input
type InputSink interface {
	Set(in domain.InputSnapshot)
}

// Config tunes the broadcast loop and session liveness. A session is dropped
// when neither a frame nor a pong arrives within PongWait.
type Config struct {
	Interval     time.Duration
	TickRateHz   int
	SendBuffer   int
	PongWait     time.Duration
	PingInterval time.Duration
}

type session struct {
	id  string
	out chan []byte
}

// Server fans snapshots out to every attached session
type Server struct {
	source   SnapshotSource
	input    InputSink
	cfg      Config
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewServer creates an observer server. A nil input makes sessions read-only.
func NewServer(source SnapshotSource, input InputSink, cfg Config) *Server {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultSendBuffer
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = DefaultPongWait
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongWait {
		cfg.PingInterval = cfg.PongWait * 9 / 10
	}
	return &Server{
		source: source,
		input:  input,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  BufferSize,
			WriteBufferSize: BufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
}

// Run broadcasts a snapshot every interval until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap := s.source.Snapshot()
			metrics.RecordSnapshot(snap)
			s.Broadcast(ctx, snap)
		}
	}
}

// Broadcast encodes snap once and queues it on every session. Sessions with a
// full buffer skip this frame.
func (s *Server) Broadcast(ctx context.Context, snap domain.Snapshot) {
	frame, err := json.Marshal(SnapshotMsg{
		Type:            MsgTypeSnapshot,
		ProtocolVersion: ProtocolVersion,
		Snapshot:        snap,
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSnapshotEncode, "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		select {
		case sess.out <- frame:
		default:
			logger.FromContext(ctx).Debug(LogMsgSnapshotDropped, "session_id", sess.id)
		}
	}
}

// SessionCount returns the number of attached sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) join() *session {
	sess := &session{
		id:  uuid.New().String(),
		out: make(chan []byte, s.cfg.SendBuffer),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	metrics.ObserversAttached.Inc()
	return sess
}

func (s *Server) leave(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	metrics.ObserversAttached.Dec()
}

// WSHandler upgrades the request and serves one observer session
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Debug(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		snap := s.source.Snapshot()
		sess := s.join()
		defer s.leave(sess.id)
		log = log.With("session_id", sess.id)
		log.Info(LogMsgSessionJoined)

		hello := HelloMsg{
			Type:            MsgTypeHello,
			ProtocolVersion: ProtocolVersion,
			SessionID:       sess.id,
			Tick:            snap.Tick,
			TickRateHz:      s.cfg.TickRateHz,
		}
		_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(hello); err != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(SnapshotMsg{Type: MsgTypeSnapshot, ProtocolVersion: ProtocolVersion, Snapshot: snap}); err != nil {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		writeErr := make(chan error, 1)
		go func() {
			ping := time.NewTicker(s.cfg.PingInterval)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case frame := <-sess.out:
					_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
						writeErr <- err
						return
					}
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		extend := func() error { return conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait)) }
		conn.SetPongHandler(func(string) error { return extend() })
		_ = extend()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			_ = extend()
			s.handleInput(r.Context(), msg)
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(CloseTimeout))

		select {
		case <-writeErr:
		case <-time.After(WriterDrain):
		}
		log.Info(LogMsgSessionLeft)
	}
}

func (s *Server) handleInput(ctx context.Context, msg []byte) {
	if s.input == nil {
		return
	}
	var in InputMsg
	if err := json.Unmarshal(msg, &in); err != nil {
		logger.FromContext(ctx).Debug(LogMsgInputRejected, "error", err)
		return
	}
	if err := validation.Struct(in); err != nil {
		logger.FromContext(ctx).Debug(LogMsgInputRejected, "fields", validation.FormatFieldErrors(err))
		return
	}
	s.input.Set(in.Snapshot())
}
