// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about engine state changes and save-slot operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Engine hooks carry no context: the engine is synchronous and never blocks,
// so there is nothing to cancel or trace across.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGameHooks(&myGameHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Game().OnLinesCleared(2, 100, 1)
//	observability.Store().OnSave(ctx, "file", id, len(data), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Game Hooks
// =============================================================================

// GameHooks receives events from the game engine.
type GameHooks interface {
	// OnSpawn records a piece becoming the active piece.
	OnSpawn(kind string)

	// OnLock records a piece being frozen into the board.
	OnLock(kind string, lines int)

	// OnLinesCleared records a scoring line clear.
	OnLinesCleared(lines, points, level int)

	// OnStatusChange records a lifecycle transition.
	OnStatusChange(from, to string)

	// OnGameOver records the final tally when a spawn collides.
	OnGameOver(score, level, lines int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from save-slot backends.
type StoreHooks interface {
	// OnSave records a save attempt.
	OnSave(ctx context.Context, backend, id string, size int, err error)

	// OnLoad records a load attempt.
	OnLoad(ctx context.Context, backend, id string, duration time.Duration, err error)

	// OnDelete records a delete attempt.
	OnDelete(ctx context.Context, backend, id string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGameHooks is a no-op implementation of GameHooks.
type NoopGameHooks struct{}

func (NoopGameHooks) OnSpawn(string)                {}
func (NoopGameHooks) OnLock(string, int)            {}
func (NoopGameHooks) OnLinesCleared(int, int, int)  {}
func (NoopGameHooks) OnStatusChange(string, string) {}
func (NoopGameHooks) OnGameOver(int, int, int)      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, int, error)           {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, time.Duration, error) {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error)              {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gameHooks  GameHooks  = NoopGameHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetGameHooks registers custom engine hooks.
// This should be called once at application startup before any engine is created.
func SetGameHooks(h GameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gameHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Game returns the registered engine hooks.
func Game() GameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gameHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gameHooks = NoopGameHooks{}
	storeHooks = NoopStoreHooks{}
}
