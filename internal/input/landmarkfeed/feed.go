// Package landmarkfeed receives hand landmarks from an external detector over
// a websocket and hands the newest frame to the game loop through a channel.
//
// The detector sends one JSON text message per detection:
//
//	{"t": 1532.5, "landmarks": [{"x": 0.41, "y": 0.62}, ...]}
//
// t is a monotonic timestamp in milliseconds; landmarks are normalized image
// coordinates (0..1, origin top-left) in the 21-point hand layout, or null
// when no hand is visible. Every connection gets a new session number and
// ends with a frame marked Disconnected, so a reader can tell a reloaded
// detector from a stale one.
package landmarkfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/core/vec"
)

// Path is the websocket route the detector connects to.
const Path = "/landmarks"

// 21 landmarks fit in well under 2 KiB
const maxMessageSize = 64 << 10

// Frame is one detection result.
type Frame struct {
	Timestamp time.Duration
	Landmarks []vec.Vec2 // empty when no hand was found

	// Session identifies the detector connection that produced the frame.
	Session uint64
	// Disconnected marks the last frame of a session. It carries no landmarks.
	Disconnected bool
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type message struct {
	T         *float64 `json:"t"`
	Landmarks []point  `json:"landmarks"`
}

// Decode parses one detector message.
func Decode(data []byte) (Frame, error) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Frame{}, fmt.Errorf("failed to parse landmark frame: %w", err)
	}
	if msg.T == nil {
		return Frame{}, errors.New("landmark frame has no timestamp")
	}
	frame := Frame{Timestamp: time.Duration(*msg.T * float64(time.Millisecond))}
	if len(msg.Landmarks) > 0 {
		frame.Landmarks = make([]vec.Vec2, len(msg.Landmarks))
		for i, p := range msg.Landmarks {
			frame.Landmarks[i] = vec.Vec2{X: p.X, Y: p.Y}
		}
	}
	return frame, nil
}

// Server accepts detector connections.
type Server struct {
	addr   string
	logger *zap.Logger
	frames chan Frame

	upgrader websocket.Upgrader
	listener net.Listener

	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	sessions uint64
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a feed server for addr (host:port).
func NewServer(addr string, logger *zap.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger.Named("landmarkfeed"),
		frames: make(chan Frame, 1),
		upgrader: websocket.Upgrader{
			// the detector runs in a local browser page
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Frames delivers the newest unread frame. It is closed when Serve returns.
func (s *Server) Frames() <-chan Frame {
	return s.frames
}

// Listen binds the address. It is split from Serve so a bind failure can
// disable gesture input before the game starts.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve handles connections until ctx is cancelled, then closes Frames.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			close(s.frames)
			return err
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handle)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveDone := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-serveDone:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeConns()
	}()

	s.logger.Info("waiting for hand tracker", zap.String("url", "ws://"+s.Addr()+Path))
	err := srv.Serve(s.listener)
	close(serveDone)
	<-stopped
	// no handler can register after closeConns, so this waits for all readers
	s.wg.Wait()
	close(s.frames)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler exposes the websocket endpoint, mainly for tests.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handle)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	session, ok := s.track(conn)
	if !ok {
		conn.Close()
		return
	}
	defer s.untrack(conn, session)
	conn.SetReadLimit(maxMessageSize)

	s.logger.Info("hand tracker connected",
		zap.String("remote", r.RemoteAddr),
		zap.Uint64("session", session))
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("hand tracker read ended", zap.Error(err))
			}
			s.logger.Info("hand tracker disconnected", zap.String("remote", r.RemoteAddr))
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		frame, err := Decode(data)
		if err != nil {
			s.logger.Debug("dropping bad frame", zap.Error(err))
			continue
		}
		frame.Session = session
		s.publish(frame)
	}
}

// publish keeps only the newest frame in the channel.
func (s *Server) publish(f Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

func (s *Server) track(conn *websocket.Conn) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	s.conns[conn] = struct{}{}
	s.sessions++
	s.wg.Add(1)
	return s.sessions, true
}

// untrack publishes the session's disconnect frame before releasing the
// wait group, so it always lands ahead of the channel close.
func (s *Server) untrack(conn *websocket.Conn, session uint64) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
	s.publish(Frame{Session: session, Disconnected: true})
	s.wg.Done()
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn := range s.conns {
		conn.Close()
	}
}
