// Package registry provides a global registry for game factories.
// Game variants register themselves in init() functions, so the platform
// can discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Game is what the terminal platform drives. Implementations contain pure
// logic with no Bubble Tea dependency.
type Game interface {
	// ID returns a unique identifier, e.g. "pong_4p".
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Players returns how many local keyboards the game reads.
	Players() int

	// Reset starts a new match. Called once when the game model starts.
	// Restarts and resizes are handled without it.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.MultiInputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the platform-facing summary.
	State() core.GameState
}

// Visibility is implemented by games that pause when the terminal loses focus.
type Visibility interface {
	SetVisible(visible bool)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Players: g.Players()}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
