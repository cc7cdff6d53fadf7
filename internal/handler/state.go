package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/hud"
	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/progression"
)

// DefaultStateCacheTTL bounds how long an encoded tick stays cached
const DefaultStateCacheTTL = 5 * time.Second

// GameReader is the read side of the engine served over HTTP
type GameReader interface {
	Snapshot() domain.Snapshot
	Tick() uint64
	Catalog() *progression.Catalog
}

// StateCache holds encoded snapshots keyed by tick. A tick's state never
// changes once the tick completes, so entries only need to expire for size.
type StateCache struct {
	lru *expirable.LRU[uint64, []byte]
}

// NewStateCache creates a cache holding at most size ticks
func NewStateCache(size int, ttl time.Duration) *StateCache {
	if ttl <= 0 {
		ttl = DefaultStateCacheTTL
	}
	return &StateCache{
		lru: expirable.NewLRU[uint64, []byte](size, nil, ttl),
	}
}

// Get returns the encoded snapshot for tick
func (c *StateCache) Get(tick uint64) ([]byte, bool) {
	return c.lru.Get(tick)
}

// Add stores the encoded snapshot for tick
func (c *StateCache) Add(tick uint64, data []byte) {
	c.lru.Add(tick, data)
}

// Len returns the number of cached ticks
func (c *StateCache) Len() int {
	return c.lru.Len()
}

// HandleState returns the current snapshot as JSON
func HandleState(game GameReader, cache *StateCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tick := game.Tick()
		if data, ok := cache.Get(tick); ok {
			w.Header().Set(HeaderTick, strconv.FormatUint(tick, 10))
			writeState(w, data, CacheHit)
			return
		}

		snap := game.Snapshot()
		data, err := snap.JSON()
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgStateEncodeError, "tick", snap.Tick, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgEncodeStateFailed)
			return
		}
		cache.Add(snap.Tick, data)
		w.Header().Set(HeaderTick, strconv.FormatUint(snap.Tick, 10))
		writeState(w, data, CacheMiss)
	}
}

func writeState(w http.ResponseWriter, data []byte, cacheStatus string) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.Header().Set(HeaderCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleHUD returns the HUD lines for the current snapshot
func HandleHUD(game GameReader, f *hud.Formatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, f.Render(game.Snapshot()))
	}
}

// HandleCatalog returns the loaded unlock catalog
func HandleCatalog(game GameReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := game.Catalog()
		if catalog == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgCatalogUnloaded)
			return
		}
		respondJSON(w, http.StatusOK, catalog)
	}
}
