package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/Tycoon_Go/internal/logger"
)

// APIKeyMiddleware admits requests carrying the key in the X-API-Key header
// or the api_key query parameter. Probe and version paths stay open.
func APIKeyMiddleware(apiKey string, proxies proxySet, limiter *ClientLimiter) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if got == "" {
				got = r.URL.Query().Get(QueryAPIKey)
			}
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			client := proxies.clientAddr(r)
			failures := limiter.AuthFailed(client)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"client", client,
				"path", r.URL.Path,
				"has_key", got != "",
				"failures", failures)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// BodyLimitMiddleware caps request bodies at maxBytes
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientWindow counts one client's traffic since start
type clientWindow struct {
	start        time.Time
	requests     int
	authFailures int
}

// ClientLimiter caps requests per client address. Each client gets its own
// fixed window that opens on its first request.
type ClientLimiter struct {
	window      time.Duration
	maxRequests int
	now         func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientWindow
	lastSweep time.Time
}

// NewClientLimiter allows maxRequests per client in each window
func NewClientLimiter(window time.Duration, maxRequests int) *ClientLimiter {
	return &ClientLimiter{
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
		clients:     make(map[string]*clientWindow),
	}
}

// DefaultClientLimiter allows ClientMaxRequests per ClientWindow
func DefaultClientLimiter() *ClientLimiter {
	return NewClientLimiter(ClientWindow, ClientMaxRequests)
}

// Allow counts a request from client and reports whether it is within the limit
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cw := l.windowFor(client)
	cw.requests++
	if cw.requests <= l.maxRequests {
		return true
	}
	if (cw.requests-l.maxRequests)%RateLimitLogEvery == 1 {
		slog.Warn(LogMsgClientOverLimit, "client", client, "requests", cw.requests)
	}
	return false
}

// AuthFailed records a rejected key and returns the client's failures in the
// current window
func (l *ClientLimiter) AuthFailed(client string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cw := l.windowFor(client)
	cw.authFailures++
	if cw.authFailures == AuthFailureAlertAt {
		slog.Warn(LogMsgRepeatedAuthFailures, "client", client, "failures", cw.authFailures)
	}
	return cw.authFailures
}

// Caller must hold the mutex
func (l *ClientLimiter) windowFor(client string) *clientWindow {
	now := l.now()
	if now.Sub(l.lastSweep) > l.window {
		for addr, cw := range l.clients {
			if now.Sub(cw.start) > l.window {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	cw, ok := l.clients[client]
	if !ok || now.Sub(cw.start) > l.window {
		cw = &clientWindow{start: now}
		l.clients[client] = cw
	}
	return cw
}

// RateLimitMiddleware rejects clients over their request limit
func RateLimitMiddleware(proxies proxySet, limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(proxies.clientAddr(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// proxySet holds the reverse proxies whose X-Forwarded-For is believed
type proxySet map[string]struct{}

func newProxySet(addrs []string) proxySet {
	set := make(proxySet, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// clientAddr is the peer address, or the last forwarded hop when the peer is
// a trusted proxy
func (p proxySet) clientAddr(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, trusted := p[peer]; !trusted {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// responseHeaders are set on every response
var responseHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// ResponseHeadersMiddleware adds the browser hardening headers
func ResponseHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range responseHeaders {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
