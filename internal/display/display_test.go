package display

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ram55git/recipediary/internal/config"
	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/gallery"
	"github.com/ram55git/recipediary/internal/logger"
	"github.com/ram55git/recipediary/internal/modal"
	"github.com/ram55git/recipediary/internal/record"
	"github.com/ram55git/recipediary/internal/upload"
)

type fakeService struct {
	recipes []*domain.Recipe
	listErr error
}

func (s *fakeService) ProcessRecipe(context.Context, *domain.AudioArtifact, string, string) (*domain.ProcessResult, error) {
	return nil, domain.ErrNetworkUnavailable
}
func (s *fakeService) ListRecipes(context.Context, string) ([]*domain.Recipe, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.recipes, nil
}
func (s *fakeService) UpdateRecipe(_ context.Context, r *domain.Recipe) (*domain.Recipe, error) {
	return r.Clone(), nil
}
func (s *fakeService) DeleteRecipe(context.Context, string) error { return nil }
func (s *fakeService) Credits(context.Context) (int, error)       { return 5, nil }

type fakeAuth struct{}

func (fakeAuth) SignedIn() bool { return true }
func (fakeAuth) Token() string  { return "tok" }

type fakeCapture struct{}

func (fakeCapture) Start(context.Context, func([]byte)) (domain.CaptureSession, error) {
	return nil, domain.ErrUnsupportedPlatform
}

func testModel() model {
	return testModelWith(&fakeService{})
}

func testModelWith(svc *fakeService) model {
	log := logger.New(logger.LevelOff, nil)
	recipeList := gallery.NewController(svc, log)
	return newModel(Deps{
		Recorder: record.New(fakeCapture{}, fakeAuth{}, log),
		Uploads:  upload.NewHandler(fakeAuth{}, log),
		Gallery:  recipeList,
		Modal:    modal.New(svc, log, nil, nil),
		Preview:  noopPreview{},
		Service:  svc,
		Config:   config.Config{},
		Log:      log,
	})
}

type noopPreview struct{}

func (noopPreview) Play(*domain.AudioArtifact) error { return nil }
func (noopPreview) Stop()                            {}

func TestCreditExhaustionShowsPurchasePrompt(t *testing.T) {
	m := testModel()
	m.artifact = &domain.AudioArtifact{ID: "a", Data: []byte("x")}

	updated, _ := m.handleProcessed(processedMsg{err: domain.ErrInsufficientCredits})
	got := updated.(model)

	if !got.noCredits {
		t.Fatal("402 did not surface the purchase prompt")
	}
	if got.errText != "" {
		t.Fatalf("402 rendered as a generic error: %q", got.errText)
	}
	// The artifact stays staged so a retry after purchase works.
	if got.artifact == nil {
		t.Fatal("artifact discarded on credit exhaustion")
	}
}

func TestProcessingFailureKeepsArtifactForRetry(t *testing.T) {
	m := testModel()
	m.artifact = &domain.AudioArtifact{ID: "a", Data: []byte("x")}

	updated, _ := m.handleProcessed(processedMsg{err: &domain.ProcessingError{Message: "bad audio"}})
	got := updated.(model)

	if got.errText == "" {
		t.Fatal("processing failure not surfaced")
	}
	if got.artifact == nil {
		t.Fatal("artifact discarded on processing failure")
	}
	if got.noCredits {
		t.Fatal("processing failure misreported as credit exhaustion")
	}
}

func TestProcessedSuccessOpensModalAndUpdatesCredits(t *testing.T) {
	m := testModel()
	m.artifact = &domain.AudioArtifact{ID: "a", Data: []byte("x")}

	recipe := &domain.Recipe{ID: "r1", Name: "Tea", Ingredients: []string{"Water"}, Instructions: []string{"Boil"}}
	updated, cmd := m.handleProcessed(processedMsg{res: &domain.ProcessResult{
		Recipe:           recipe,
		CreditsRemaining: 3,
		HasCredits:       true,
	}})
	got := updated.(model)

	if got.view != viewModal {
		t.Fatalf("expected modal view, got %d", got.view)
	}
	if got.credits != 3 || !got.hasCredits {
		t.Fatalf("server credit balance not adopted: %d", got.credits)
	}
	if got.artifact != nil {
		t.Fatal("consumed artifact not cleared")
	}
	if got.deps.Modal.State() != modal.StateViewing {
		t.Fatalf("modal not opened: %s", got.deps.Modal.State())
	}
	if cmd == nil {
		t.Fatal("gallery reload not scheduled after processing")
	}
}

func TestGalleryEmptyStateShowsZeroCount(t *testing.T) {
	m := testModel()
	if err := m.deps.Gallery.Load(context.Background(), ""); err != nil {
		t.Fatalf("load: %v", err)
	}

	out := m.renderGalleryView()
	if !strings.Contains(out, "0 recipes") {
		t.Fatalf("empty gallery missing count line:\n%s", out)
	}
	if !strings.Contains(out, "No recipes yet") {
		t.Fatalf("empty gallery missing empty message:\n%s", out)
	}
}

func TestGalleryFailureShowsNoCount(t *testing.T) {
	svc := &fakeService{listErr: domain.ErrNetworkUnavailable}
	m := testModelWith(svc)
	if err := m.deps.Gallery.Load(context.Background(), ""); err == nil {
		t.Fatal("load against a dead backend must fail")
	}

	out := m.renderGalleryView()
	if strings.Contains(out, "0 recipes") {
		t.Fatalf("failure state rendered as an empty library:\n%s", out)
	}
	if !strings.Contains(out, "Couldn't load") {
		t.Fatalf("failure state missing error message:\n%s", out)
	}
}

func TestTruncateCutsOnRunes(t *testing.T) {
	got := truncate(strings.Repeat("é", 10), 5)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 5 {
		t.Fatalf("expected 5 runes, got %d (%q)", n, got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}

	if got := truncate("short", 72); got != "short" {
		t.Fatalf("short string modified: %q", got)
	}
}
