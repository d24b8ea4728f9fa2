// Package gallery manages the saved-recipe list: loading it from the
// backend, server-side search, and the state shown while a fetch is in
// flight or has failed.
package gallery

import (
	"context"
	"sync"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// State is the gallery's display state. Loading, empty, and failed are
// distinct so the view never renders a stale list as current.
type State int

const (
	StateInitial State = iota
	StateLoading
	StateLoaded
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Controller owns the recipe list. Every Load fully replaces the list;
// there is no incremental merge. On failure the previous list is
// discarded rather than shown as if it were fresh.
type Controller struct {
	service domain.RecipeService
	log     *logger.Logger

	mu      sync.Mutex
	state   State
	recipes []*domain.Recipe
	query   string
	lastErr error
	gen     int // load generation, newest wins
}

// NewController creates a gallery controller in the initial state.
func NewController(service domain.RecipeService, log *logger.Logger) *Controller {
	return &Controller{service: service, log: log}
}

// Load fetches the recipe list filtered by query and replaces the
// current list wholesale. The query is remembered for Reload. A stale
// load that finishes after a newer one started is discarded.
func (c *Controller) Load(ctx context.Context, query string) error {
	c.mu.Lock()
	c.state = StateLoading
	c.query = query
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	recipes, err := c.service.ListRecipes(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("gallery: discarding stale load (gen %d, current %d)", gen, c.gen)
		return nil
	}

	if err != nil {
		c.recipes = nil
		c.lastErr = err
		c.state = StateFailed
		c.log.Error("gallery: load failed: %v", err)
		return err
	}

	c.recipes = recipes
	c.lastErr = nil
	if len(recipes) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateLoaded
	}
	c.log.Debug("gallery: loaded %d recipes (query=%q)", len(recipes), query)
	return nil
}

// Reload repeats the last load with the same query. Used after deletes
// and saves so the list reflects the server.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()
	return c.Load(ctx, query)
}

// State returns the current display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Recipes returns the current list. Only meaningful in StateLoaded;
// empty otherwise.
func (c *Controller) Recipes() []*domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recipes
}

// Count returns the number of recipes currently shown.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.recipes)
}

// Query returns the active search query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Err returns the failure from the last load, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
