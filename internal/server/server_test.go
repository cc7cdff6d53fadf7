package server

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/handler"
	"github.com/osse101/Tycoon_Go/internal/hud"
	"github.com/osse101/Tycoon_Go/internal/observer"
	"github.com/osse101/Tycoon_Go/internal/sse"
)

const testAPIKey = "test-key"

type fixture struct {
	game  *engine.Game
	latch *engine.InputLatch
	url   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	latch := engine.NewInputLatch()
	game, err := engine.New(engine.DefaultConfig(), nil, engine.WithInputSource(latch))
	require.NoError(t, err)

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	srv := NewServer(Config{APIKey: testAPIKey}, Deps{
		Game:     game,
		Input:    latch,
		Cache:    handler.NewStateCache(8, time.Minute),
		HUD:      hud.NewFormatter(language.English),
		Hub:      hub,
		Observer: observer.NewServer(game, latch, observer.Config{TickRateHz: 60}),
		Ready:    []handler.HealthChecker{game},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return fixture{game: game, latch: latch, url: ts.URL}
}

func (f fixture) do(t *testing.T, method, path, body string, withKey bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.url+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	if withKey {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes_PublicAndSecurityHeaders(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, PathHealthz, "", false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, HeaderValueNoSniff, resp.Header.Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, resp.Header.Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, resp.Header.Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, resp.Header.Get(HeaderReferrerPolicy))

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, PathVersion, "", false).StatusCode)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, PathMetrics, "", false).StatusCode)
}

func TestRoutes_ReadyzTracksRunLoop(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodGet, PathReadyz, "", false).StatusCode)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.game.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	require.Eventually(t, func() bool {
		resp := f.do(t, http.MethodGet, PathReadyz, "", false)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRoutes_APIRequiresKey(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{PathState, PathHUD, PathCatalog} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, PathAPI+path, "", false).StatusCode)
			assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, PathAPI+path, "", true).StatusCode)
		})
	}
}

func TestRoutes_InputReachesLatch(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, PathAPI+PathInput, `{"movement":{"x":0,"y":0,"z":1},"yaw":0.5}`, true)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 1.0, f.latch.CurrentMovementVector().Z)
}

func TestRoutes_EventStreamFlushesThroughMiddleware(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url+PathAPI+PathEvents+"?"+QueryAPIKey+"="+testAPIKey, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	reader := bufio.NewReader(resp.Body)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: "+sse.EventTypeConnected+"\n", line)
}

func TestRoutes_WebsocketUpgradesThroughMiddleware(t *testing.T) {
	f := newFixture(t)

	url := "ws" + strings.TrimPrefix(f.url, "http") + PathAPI + PathWS + "?" + QueryAPIKey + "=" + testAPIKey
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello observer.HelloMsg
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, observer.MsgTypeHello, hello.Type)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(f.url, "http")+PathAPI+PathWS, nil)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
}
