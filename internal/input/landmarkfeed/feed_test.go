package landmarkfeed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecode(t *testing.T) {
	f, err := Decode([]byte(`{"t": 1500, "landmarks": [{"x": 0.25, "y": 0.5}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, f.Timestamp)
	require.Len(t, f.Landmarks, 1)
	assert.Equal(t, 0.25, f.Landmarks[0].X)

	f, err = Decode([]byte(`{"t": 10, "landmarks": null}`))
	require.NoError(t, err)
	assert.Empty(t, f.Landmarks)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"landmarks": []}`))
	assert.Error(t, err)
}

func TestPublishKeepsNewest(t *testing.T) {
	s := NewServer("127.0.0.1:0", zap.NewNop())
	s.publish(Frame{Timestamp: 1})
	s.publish(Frame{Timestamp: 2})
	s.publish(Frame{Timestamp: 3})

	f := <-s.Frames()
	assert.Equal(t, time.Duration(3), f.Timestamp)
	select {
	case extra := <-s.Frames():
		t.Fatalf("unexpected extra frame %v", extra)
	default:
	}
}

func TestHandlerForwardsFrames(t *testing.T) {
	s := NewServer("127.0.0.1:0", zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"t": 42, "landmarks": [{"x": 0.1, "y": 0.2}]}`)))

	f := nextFrame(t, s)
	assert.Equal(t, 42*time.Millisecond, f.Timestamp)
	require.Len(t, f.Landmarks, 1)
	assert.NotZero(t, f.Session)
	assert.False(t, f.Disconnected)
}

func nextFrame(t *testing.T, s *Server) Frame {
	t.Helper()
	select {
	case f := <-s.Frames():
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func TestDisconnectPublishesSessionEnd(t *testing.T) {
	s := NewServer("127.0.0.1:0", zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`{"t": 90000, "landmarks": []}`)))
	f := nextFrame(t, s)
	session := f.Session

	require.NoError(t, first.Close())
	f = nextFrame(t, s)
	assert.True(t, f.Disconnected)
	assert.Equal(t, session, f.Session)
	assert.Empty(t, f.Landmarks)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.WriteMessage(websocket.TextMessage, []byte(`{"t": 0, "landmarks": []}`)))
	f = nextFrame(t, s)
	assert.Greater(t, f.Session, session)
	assert.False(t, f.Disconnected)
}

func TestServeClosesFramesOnCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", zap.NewNop())
	require.NoError(t, s.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	url := "ws://" + s.Addr() + Path
	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn = c
		return true
	}, 2*time.Second, 20*time.Millisecond)
	defer conn.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	var last Frame
	for f := range s.Frames() {
		last = f
	}
	assert.True(t, last.Disconnected)
}

func TestListenFailure(t *testing.T) {
	s := NewServer("256.0.0.1:99999", zap.NewNop())
	assert.Error(t, s.Listen())
}
