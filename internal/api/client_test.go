package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

type fakeAuth struct {
	token string
}

func (f *fakeAuth) SignedIn() bool { return f.token != "" }
func (f *fakeAuth) Token() string  { return f.token }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.LevelOff, nil)
	c := NewClient(srv.URL, &fakeAuth{token: "tok-1"}, log)
	return c, srv
}

func testArtifact() *domain.AudioArtifact {
	return &domain.AudioArtifact{
		ID:       "art-1",
		Data:     []byte("riff-bytes"),
		MIMEType: "audio/wav",
		Origin:   domain.OriginRecorded,
		Filename: "recipe-audio.wav",
	}
}

func TestProcessRecipeSuccess(t *testing.T) {
	var gotAuth, gotLang, gotOut string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotLang = r.FormValue("language")
		gotOut = r.FormValue("output_language")
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Fatalf("audio part missing: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"recipe_name":       "Tea",
			"ingredients":       []string{"Water", "Tea leaves"},
			"instructions":      []string{"Boil water", "Steep leaves"},
			"credits_remaining": 4,
		})
	}))

	res, err := c.ProcessRecipe(context.Background(), testArtifact(), "en-US", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("bearer token not forwarded: %q", gotAuth)
	}
	if gotLang != "en-US" || gotOut != "en" {
		t.Fatalf("language fields not sent: %q / %q", gotLang, gotOut)
	}
	if res.Recipe.Name != "Tea" {
		t.Fatalf("unexpected recipe name: %q", res.Recipe.Name)
	}
	if len(res.Recipe.Ingredients) != 2 || res.Recipe.Ingredients[0] != "Water" {
		t.Fatalf("ingredient order lost: %v", res.Recipe.Ingredients)
	}
	if !res.HasCredits || res.CreditsRemaining != 4 {
		t.Fatalf("credits not propagated: %+v", res)
	}
}

func TestProcessRecipeInsufficientCredits(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "Insufficient credits"})
	}))

	_, err := c.ProcessRecipe(context.Background(), testArtifact(), "en-US", "")
	if !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestProcessRecipeServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to transcribe audio"})
	}))

	_, err := c.ProcessRecipe(context.Background(), testArtifact(), "en-US", "")
	var pe *domain.ProcessingError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProcessingError, got %v", err)
	}
	if pe.Message != "Failed to transcribe audio" {
		t.Fatalf("server message lost: %q", pe.Message)
	}
}

func TestProcessRecipeNetworkFailure(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := c.ProcessRecipe(context.Background(), testArtifact(), "en-US", "")
	if !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
}

func TestProcessRecipeRequiresAuth(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	c := NewClient("http://localhost:0", &fakeAuth{}, log)

	_, err := c.ProcessRecipe(context.Background(), testArtifact(), "en-US", "")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestListRecipesSendsQuery(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "pasta sauce" {
			t.Fatalf("unexpected search query: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"recipes": []map[string]any{
				{"id": "r1", "recipe_name": "Pasta"},
			},
		})
	}))

	recipes, err := c.ListRecipes(context.Background(), "pasta sauce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "Pasta" {
		t.Fatalf("unexpected result: %+v", recipes)
	}
}

func TestUpdateRecipeReturnsServerCopy(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		var in domain.Recipe
		json.NewDecoder(r.Body).Decode(&in)
		// Server normalizes the name.
		in.Name = "Normalized " + in.Name
		json.NewEncoder(w).Encode(in)
	}))

	saved, err := c.UpdateRecipe(context.Background(), &domain.Recipe{ID: "r1", Name: "Tea"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Normalized Tea" {
		t.Fatalf("server copy not returned: %q", saved.Name)
	}
}

func TestUpdateRecipeFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.UpdateRecipe(context.Background(), &domain.Recipe{ID: "r1"})
	if !errors.Is(err, domain.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestDeleteRecipe(t *testing.T) {
	deleted := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/recipes/r1" {
			deleted = true
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	if err := c.DeleteRecipe(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("delete endpoint not hit")
	}
}

func TestCredits(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/credits" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"credits": 7})
	}))

	credits, err := c.Credits(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if credits != 7 {
		t.Fatalf("expected 7 credits, got %d", credits)
	}
}
