package engine

import (
	"sort"
	"sync"
)

// Registry tracks live games by session ID.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*Game),
	}
}

// Register adds a game to the registry.
func (r *Registry) Register(g *Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID()] = g
}

// Unregister removes a game from the registry.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, id)
}

// Get retrieves a game by session ID.
func (r *Registry) Get(id string) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// Count returns the number of registered games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// IDs returns the registered session IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
