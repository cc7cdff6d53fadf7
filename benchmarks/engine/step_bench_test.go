package engine_bench

import (
	"context"
	"testing"

	"golang.org/x/text/language"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/hud"
	"github.com/osse101/Tycoon_Go/internal/progression"
)

// newBusyGame returns a game with a dropper bought and the player parked
// off every pad, so each step spawns and advances items without purchases.
func newBusyGame(b *testing.B, opts ...engine.Option) *engine.Game {
	b.Helper()
	cfg := engine.DefaultConfig()
	cfg.Economy.StartingBalance = 25
	cfg.PlayerStart = domain.Point3{X: -6, Y: 1, Z: 4}
	cfg.PlayerSpeed = 100

	g, err := engine.New(cfg, progression.DefaultCatalog(), opts...)
	if err != nil {
		b.Fatalf("engine.New: %v", err)
	}

	ctx := context.Background()
	if res := g.Step(ctx, domain.InputSnapshot{}); res.Dropper == nil {
		b.Fatal("expected the starting dropper purchase")
	}
	g.Step(ctx, domain.InputSnapshot{Movement: domain.Vec3{Z: -1}})
	// fill the belt
	for i := 0; i < 500; i++ {
		g.Step(ctx, domain.InputSnapshot{})
	}
	return g
}

func BenchmarkStep_Idle(b *testing.B) {
	g := newBusyGame(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(ctx, domain.InputSnapshot{})
	}
}

func BenchmarkStep_WithBus(b *testing.B) {
	bus := event.NewMemoryBus()
	for _, t := range event.AllTypes {
		bus.Subscribe(t, func(context.Context, event.Event) error { return nil })
	}
	g := newBusyGame(b, engine.WithPublisher(bus))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(ctx, domain.InputSnapshot{})
	}
}

func BenchmarkSnapshot(b *testing.B) {
	g := newBusyGame(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Snapshot()
	}
}

func BenchmarkSnapshotJSON(b *testing.B) {
	g := newBusyGame(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Snapshot().JSON(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHUDRender(b *testing.B) {
	snap := newBusyGame(b).Snapshot()
	f := hud.NewFormatter(language.English)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Render(snap)
	}
}
