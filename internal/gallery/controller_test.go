package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// fakeService scripts ListRecipes responses per call.
type fakeService struct {
	domain.RecipeService

	recipes []*domain.Recipe
	err     error
	queries []string
}

func (s *fakeService) ListRecipes(_ context.Context, query string) ([]*domain.Recipe, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes, nil
}

func newController(svc *fakeService) *Controller {
	return NewController(svc, logger.New(logger.LevelOff, nil))
}

func TestLoadReplacesList(t *testing.T) {
	svc := &fakeService{recipes: []*domain.Recipe{
		{ID: "1", Name: "Pasta"},
		{ID: "2", Name: "Soup"},
	}}
	c := newController(svc)

	if err := c.Load(context.Background(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.State() != StateLoaded {
		t.Fatalf("expected loaded, got %s", c.State())
	}
	if c.Count() != 2 {
		t.Fatalf("expected 2 recipes, got %d", c.Count())
	}

	// A second load fully replaces, never merges.
	svc.recipes = []*domain.Recipe{{ID: "3", Name: "Salad"}}
	if err := c.Load(context.Background(), ""); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := c.Recipes()
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected full replacement with recipe 3, got %+v", got)
	}
}

func TestLoadEmptyIsDistinctState(t *testing.T) {
	c := newController(&fakeService{})
	if err := c.Load(context.Background(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", c.State())
	}
}

func TestLoadFailureDiscardsPreviousList(t *testing.T) {
	svc := &fakeService{recipes: []*domain.Recipe{{ID: "1", Name: "Pasta"}}}
	c := newController(svc)

	if err := c.Load(context.Background(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}

	svc.err = domain.ErrNetworkUnavailable
	err := c.Load(context.Background(), "")
	if !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected network error, got %v", err)
	}
	if c.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", c.State())
	}
	if c.Count() != 0 {
		t.Fatal("stale list retained after failed load")
	}
	if !errors.Is(c.Err(), domain.ErrNetworkUnavailable) {
		t.Fatalf("Err() = %v", c.Err())
	}
}

func TestSearchQueryForwardedAndRemembered(t *testing.T) {
	svc := &fakeService{recipes: []*domain.Recipe{{ID: "1", Name: "Chicken Curry"}}}
	c := newController(svc)

	if err := c.Load(context.Background(), "chicken"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Query() != "chicken" {
		t.Fatalf("query not remembered: %q", c.Query())
	}

	// Reload after e.g. a delete keeps the active filter.
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	want := []string{"chicken", "chicken"}
	if len(svc.queries) != len(want) {
		t.Fatalf("expected %d list calls, got %d", len(want), len(svc.queries))
	}
	for i, q := range want {
		if svc.queries[i] != q {
			t.Fatalf("call %d used query %q, want %q", i, svc.queries[i], q)
		}
	}
}

func TestRecoveryAfterFailure(t *testing.T) {
	svc := &fakeService{err: domain.ErrNetworkUnavailable}
	c := newController(svc)

	if err := c.Load(context.Background(), ""); err == nil {
		t.Fatal("expected load failure")
	}

	svc.err = nil
	svc.recipes = []*domain.Recipe{{ID: "1", Name: "Stew"}}
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if c.State() != StateLoaded || c.Count() != 1 {
		t.Fatalf("retry did not recover: state=%s count=%d", c.State(), c.Count())
	}
	if c.Err() != nil {
		t.Fatalf("error not cleared after recovery: %v", c.Err())
	}
}
