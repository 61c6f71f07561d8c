// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

// Game is the interface the platform drives. Games own a scene and decide
// what happens in it; the platform maps keys, paces ticks and presents the
// renderer's output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "shooter").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh scene. Called once at start and again when
	// restarting after game over.
	Reset(ctx context.Context, rt core.RuntimeConfig) error

	// Tick runs one frame. A non-nil error is fatal.
	Tick() (core.GameState, error)

	// Settle waits for entities still loading and adds them to the scene.
	Settle(ctx context.Context) error

	// Input returns the held-key state the game reads.
	Input() *core.KeyInputState

	// TogglePause suspends or resumes the game.
	TogglePause()

	// State returns the current game state (score, game over, paused).
	State() core.GameState

	// Close releases everything the game holds.
	Close() error
}

// Options are handed to a Factory.
type Options struct {
	Renderer scene.Renderer
	Loader   scene.Loader
	Logger   *log.Logger
	Clock    scene.Clock

	ConfigPath string                  // explicit config file, empty for the search order
	Difficulty config.DifficultyPreset // empty keeps the config's own settings
	Variant    string                  // game-specific flavour, e.g. the enemy kind
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(opts Options) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered or the factory fails.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
