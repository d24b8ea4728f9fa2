// Package api implements the REST client for the recipe processing
// backend. It is the only place the server-reported credit balance is
// authoritative; callers must overwrite any local display with the
// value returned here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeService = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout. Processing long audio
// can take a while, so the default is generous.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client talks to the recipe backend. Every request forwards the
// bearer token from the Authenticator verbatim.
type Client struct {
	baseURL string
	auth    domain.Authenticator
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a backend client rooted at baseURL (no trailing
// slash).
func NewClient(baseURL string, auth domain.Authenticator, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		auth:    auth,
		http:    &http.Client{Timeout: 2 * time.Minute},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// errorBody is the JSON error envelope the backend returns on failure.
type errorBody struct {
	Error string `json:"error"`
}

// processResponse is the success envelope of /api/process-recipe: the
// recipe fields inline plus the remaining credit balance.
type processResponse struct {
	domain.Recipe
	Error            string `json:"error"`
	CreditsRemaining *int   `json:"credits_remaining"`
}

// ProcessRecipe submits the artifact plus language preferences as a
// multipart form and interprets the response per the backend contract:
// 402 → ErrInsufficientCredits, non-2xx with an error field →
// *ProcessingError, transport failure → ErrNetworkUnavailable.
func (c *Client) ProcessRecipe(ctx context.Context, artifact *domain.AudioArtifact, language, outputLanguage string) (*domain.ProcessResult, error) {
	if !c.auth.SignedIn() {
		return nil, domain.ErrUnauthenticated
	}
	if artifact.Empty() {
		return nil, domain.ErrEmptyRecording
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio", artifact.Filename)
	if err != nil {
		return nil, fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := part.Write(artifact.Data); err != nil {
		return nil, fmt.Errorf("api: write audio payload: %w", err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return nil, fmt.Errorf("api: write language field: %w", err)
	}
	if outputLanguage != "" {
		if err := writer.WriteField("output_language", outputLanguage); err != nil {
			return nil, fmt.Errorf("api: write output_language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/process-recipe", &body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.auth.Token())

	c.log.Debug("api: POST /api/process-recipe (%d bytes, lang=%s, out=%s, origin=%s)",
		len(artifact.Data), language, outputLanguage, artifact.Origin)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api: process-recipe transport failure: %v", err)
		return nil, domain.ErrNetworkUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrNetworkUnavailable
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		c.log.Info("api: process-recipe refused, credits exhausted")
		return nil, domain.ErrInsufficientCredits
	}

	var decoded processResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &domain.ProcessingError{Message: resp.Status}
		}
		return nil, fmt.Errorf("api: unmarshal process response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || decoded.Error != "" {
		c.log.Warn("api: process-recipe failed (%s): %s", resp.Status, decoded.Error)
		return nil, &domain.ProcessingError{Message: decoded.Error}
	}

	result := &domain.ProcessResult{Recipe: &decoded.Recipe}
	if decoded.CreditsRemaining != nil {
		result.CreditsRemaining = *decoded.CreditsRemaining
		result.HasCredits = true
	}

	c.log.Info("api: recipe generated: %q (%d ingredients, %d steps)",
		decoded.Name, len(decoded.Ingredients), len(decoded.Instructions))
	return result, nil
}

// listResponse wraps the gallery listing payload.
type listResponse struct {
	Recipes []*domain.Recipe `json:"recipes"`
}

// ListRecipes fetches the user's saved recipes, optionally filtered
// server-side by query.
func (c *Client) ListRecipes(ctx context.Context, query string) ([]*domain.Recipe, error) {
	endpoint := c.baseURL + "/api/recipes"
	if query != "" {
		endpoint += "?search=" + url.QueryEscape(query)
	}

	var decoded listResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}
	c.log.Debug("api: listed %d recipes (query=%q)", len(decoded.Recipes), query)
	return decoded.Recipes, nil
}

// UpdateRecipe persists an edited recipe and returns the server's
// copy, which may normalize fields and is authoritative.
func (c *Client) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if !c.auth.SignedIn() {
		return nil, domain.ErrUnauthenticated
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return nil, fmt.Errorf("api: marshal recipe: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/recipes/"+url.PathEscape(recipe.ID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.auth.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api: update transport failure: %v", err)
		return nil, domain.ErrNetworkUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrNetworkUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("api: update recipe %s failed: %s", recipe.ID, resp.Status)
		return nil, domain.ErrPersistenceFailed
	}

	var saved domain.Recipe
	if err := json.Unmarshal(respBody, &saved); err != nil {
		return nil, fmt.Errorf("api: unmarshal saved recipe: %w", err)
	}
	c.log.Info("api: recipe %s updated", saved.ID)
	return &saved, nil
}

// DeleteRecipe removes a saved recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	if !c.auth.SignedIn() {
		return domain.ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/recipes/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.auth.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api: delete transport failure: %v", err)
		return domain.ErrNetworkUnavailable
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("api: delete recipe %s failed: %s", id, resp.Status)
		return domain.ErrPersistenceFailed
	}
	c.log.Info("api: recipe %s deleted", id)
	return nil
}

// creditsResponse wraps the credit balance payload.
type creditsResponse struct {
	Credits int `json:"credits"`
}

// Credits fetches the current credit balance.
func (c *Client) Credits(ctx context.Context) (int, error) {
	var decoded creditsResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/user/credits", &decoded); err != nil {
		return 0, err
	}
	return decoded.Credits, nil
}

// getJSON performs an authenticated GET and decodes a JSON body.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if !c.auth.SignedIn() {
		return domain.ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.auth.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api: GET %s transport failure: %v", endpoint, err)
		return domain.ErrNetworkUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ErrNetworkUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		c.log.Warn("api: GET %s failed (%s): %s", endpoint, resp.Status, eb.Error)
		return &domain.ProcessingError{Message: eb.Error}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: unmarshal response: %w", err)
	}
	return nil
}
