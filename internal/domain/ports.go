package domain

import "context"

// RecipeService is the backend REST surface the client consumes. The
// implementation forwards the bearer credential from an Authenticator
// and never validates it.
type RecipeService interface {
	// ProcessRecipe submits an audio artifact plus language preferences
	// and returns the structured recipe and the server-reported credit
	// balance. Returns ErrInsufficientCredits on credit exhaustion,
	// *ProcessingError on a server-reported failure, and
	// ErrNetworkUnavailable on transport failure.
	ProcessRecipe(ctx context.Context, artifact *AudioArtifact, language, outputLanguage string) (*ProcessResult, error)

	// ListRecipes fetches the user's saved recipes, optionally filtered
	// server-side by query.
	ListRecipes(ctx context.Context, query string) ([]*Recipe, error)

	// UpdateRecipe persists an edited recipe and returns the server's
	// (possibly normalized) copy.
	UpdateRecipe(ctx context.Context, recipe *Recipe) (*Recipe, error)

	// DeleteRecipe removes a saved recipe.
	DeleteRecipe(ctx context.Context, id string) error

	// Credits fetches the current credit balance.
	Credits(ctx context.Context) (int, error)
}

// Authenticator supplies the bearer credential obtained from the
// external auth collaborator. The client only forwards the token.
type Authenticator interface {
	SignedIn() bool
	Token() string
}

// CaptureSession is a live microphone capture. Stop tears the device
// down; chunks delivered before Stop returns are part of the recording.
type CaptureSession interface {
	Pause() error
	Resume() error
	Stop() error
}

// AudioCapture opens microphone capture sessions. Implementations
// deliver raw PCM chunks to the callback from a device thread.
// Returns ErrUnsupportedPlatform when no capture backend exists and
// ErrPermissionDenied when the device grant is refused.
type AudioCapture interface {
	Start(ctx context.Context, onChunk func(pcm []byte)) (CaptureSession, error)
}

// Previewer plays a staged artifact back to the user before
// submission. The no-op implementation is used when audio output is
// unavailable.
type Previewer interface {
	Play(artifact *AudioArtifact) error
	Stop()
}
