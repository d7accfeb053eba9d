package games

import (
	"fmt"
	"sync"

	"github.com/parlorhub/gameroom-go/internal/model"
)

// Registry maps game types to their boxed engines. The orchestrator
// looks engines up here and never depends on a concrete game package.
type Registry struct {
	mu    sync.RWMutex
	games map[model.GameType]Game
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{games: make(map[model.GameType]Game)}
}

// Register adds a game to the registry. Duplicate registration is a
// wiring defect, not a runtime condition.
func (r *Registry) Register(g Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g == nil {
		return fmt.Errorf("nil game")
	}
	if _, exists := r.games[g.Type()]; exists {
		return fmt.Errorf("duplicate registration for game type %q", g.Type())
	}
	r.games[g.Type()] = g
	return nil
}

// MustRegister registers a game and panics on error. Used at wiring time.
func (r *Registry) MustRegister(g Game) {
	if err := r.Register(g); err != nil {
		panic(err)
	}
}

// Get returns the engine for the given game type
func (r *Registry) Get(t model.GameType) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[t]
	return g, ok
}

// Types returns the registered game types
func (r *Registry) Types() []model.GameType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]model.GameType, 0, len(r.games))
	for t := range r.games {
		types = append(types, t)
	}
	return types
}
