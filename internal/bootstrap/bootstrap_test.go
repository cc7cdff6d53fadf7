package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/config"
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/economy"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/scheduler"
	"github.com/osse101/Tycoon_Go/internal/sse"
	"github.com/osse101/Tycoon_Go/internal/worker"
)

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:            "debug",
		LogFormat:           "text",
		LogDir:              filepath.Join(dir, "logs"),
		Environment:         "test",
		ServiceName:         "tycoon-test",
		Version:             "test",
		EventMaxRetries:     1,
		EventRetryDelay:     time.Millisecond,
		EventDeadLetterPath: filepath.Join(dir, "events", "dead.jsonl"),
	}
}

func TestSetupLogger(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig(t)
	var stdout bytes.Buffer
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	logFile, err := setupLogger(cfg, &stdout, now)
	require.NoError(t, err)
	t.Cleanup(func() { logFile.Close() })

	assert.Equal(t, filepath.Join(cfg.LogDir, "session_2024-03-01_12-30-00.log"), logFile.Name())
	assert.Contains(t, stdout.String(), LogMsgStartingTycoon)
	assert.Contains(t, stdout.String(), "service=tycoon-test")

	data, err := os.ReadFile(logFile.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized, "log file receives the same lines as stdout")
}

func TestSetupLogger_BadDirectory(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.LogDir = filepath.Join(blocker, "logs")

	_, err := setupLogger(cfg, &bytes.Buffer{}, time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), LogMsgFailedCreateLogsDir)
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-0%d_00-00-00", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2024-01-03_00-00-00.log",
		"session_2024-01-04_00-00-00.log",
		"session_2024-01-05_00-00-00.log",
		"notes.txt",
	}, names)
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t)

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Shutdown(context.Background()) })

	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	var got []event.Type
	bus.Subscribe(event.FloorAdded, func(_ context.Context, evt event.Event) error {
		got = append(got, evt.Type)
		return nil
	})
	require.NoError(t, publisher.Publish(context.Background(), event.NewFloorAddedEvent(3, domain.FloorRecord{}, 2)))

	assert.Equal(t, []event.Type{event.FloorAdded}, got)
}

func TestInitializeEventSystem_DefaultsEmptySettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.EventRetryDelay = 0
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg.EventDeadLetterPath = ""

	_, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NoError(t, publisher.Shutdown(context.Background()))

	assert.FileExists(t, config.DefaultEventDeadLetter)
}

func TestRegisterEventHandlers_RelaysToHub(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	client := hub.Register(nil)
	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Hub: hub}))

	require.NoError(t, bus.Publish(context.Background(), event.NewIncomePassiveEvent(1, 11)))

	select {
	case evt := <-client.EventChannel:
		assert.Equal(t, string(event.IncomePassive), evt.Type)
		payload, ok := evt.Payload.(event.IncomePassivePayloadV1)
		require.True(t, ok)
		assert.Equal(t, 11, payload.BalanceAfter)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not relayed to the hub")
	}
}

func TestRegisterEventHandlers_WithoutHub(t *testing.T) {
	bus := event.NewMemoryBus()

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus}))
	assert.NoError(t, bus.Publish(context.Background(), event.NewIncomePassiveEvent(1, 1)))
}

func TestInitializeGame_BuiltInDefaults(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig(t)

	components, err := InitializeGame(context.Background(), cfg, nil)
	require.NoError(t, err)

	snap := components.Game.Snapshot()
	assert.Equal(t, domain.GroundFloorCount, snap.FloorCount)
	assert.NotEmpty(t, snap.Nodes)
	assert.NotNil(t, components.Input)
}

func TestInitializeGame_ShippedFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join("..", "..", config.ConfigPathCatalog)
	cfg.CatalogSchemaPath = config.ConfigPathCatalogSchema
	cfg.TuningPath = filepath.Join("..", "..", config.ConfigPathTuning)

	bus := event.NewMemoryBus()
	var registered int
	bus.Subscribe(event.NodeRegistered, func(context.Context, event.Event) error {
		registered++
		return nil
	})

	components, err := InitializeGame(context.Background(), cfg, bus)
	require.NoError(t, err)

	components.Game.StepOnce(context.Background())
	assert.Equal(t, uint64(1), components.Game.Tick())
	assert.Positive(t, registered, "root registrations are published with the first tick")
}

func TestInitializeGame_Errors(t *testing.T) {
	t.Run("missing tuning file", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.TuningPath = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := InitializeGame(context.Background(), cfg, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedLoadTuning)
	})

	t.Run("catalog violates schema", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CatalogPath = filepath.Join(t.TempDir(), "catalog.json")
		cfg.CatalogSchemaPath = config.ConfigPathCatalogSchema
		require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(`{"version":"1","nodes":[]}`), 0o644))

		_, err := InitializeGame(context.Background(), cfg, nil)

		require.ErrorIs(t, err, domain.ErrInvalidCatalog)
		assert.Contains(t, err.Error(), ErrMsgFailedLoadCatalog)
	})
}

func TestGracefulShutdown(t *testing.T) {
	cfg := testConfig(t)
	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	components, err := InitializeGame(context.Background(), cfg, publisher)
	require.NoError(t, err)

	hub := sse.NewHub()
	hub.Start()
	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Hub: hub}))
	client := hub.Register(nil)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	sched := scheduler.New(pool)
	sched.Schedule(time.Millisecond, economy.NewPassiveIncomeJob(components.Game.Economy()))

	runErr := make(chan error, 1)
	go func() { runErr <- components.Game.Run(context.Background()) }()
	require.Eventually(t, func() bool {
		return components.Game.CheckHealth(context.Background()) == nil
	}, 2*time.Second, 5*time.Millisecond)

	GracefulShutdown(context.Background(), ShutdownComponents{
		Game:               components.Game,
		Scheduler:          sched,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
	})

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("tick loop did not stop")
	}
	assert.ErrorIs(t, components.Game.CheckHealth(context.Background()), domain.ErrSimulationStopped)
	assert.ErrorIs(t, pool.Enqueue(context.Background(), worker.JobFunc(func(context.Context) error { return nil })), worker.ErrPoolStopped)

	for range client.EventChannel {
	}
	assert.Zero(t, hub.ClientCount())
}

func TestGracefulShutdown_EmptyComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
