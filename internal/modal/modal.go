// Package modal holds the recipe detail view's state machine: viewing
// a saved recipe, editing it in place, and deleting it with
// confirmation.
package modal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
	"github.com/ram55git/recipediary/internal/render"
)

// State is the modal's lifecycle state.
type State int

const (
	StateClosed State = iota
	StateViewing
	StateEditing
	StateConfirmingDelete
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateConfirmingDelete:
		return "confirming-delete"
	default:
		return "unknown"
	}
}

// Modal coordinates the detail view of one recipe. While editing it
// holds a mutable render tree; the pristine snapshot taken at open (or
// refreshed by a successful save) is what Cancel restores.
type Modal struct {
	service  domain.RecipeService
	log      *logger.Logger
	onSaved  func(ctx context.Context) error // refresh the list after a save
	onDelete func(ctx context.Context) error // refresh the list after a delete

	mu       sync.Mutex
	state    State
	snapshot *domain.Recipe // pristine copy, independent of caller and edits
	doc      *render.Node   // editable tree, non-nil only while editing
	saveErr  error
}

// New creates a closed modal. onSaved and onDelete are invoked exactly
// once after a successful save or delete so the gallery can reload with
// its query preserved; either may be nil.
func New(service domain.RecipeService, log *logger.Logger, onSaved, onDelete func(ctx context.Context) error) *Modal {
	return &Modal{service: service, log: log, onSaved: onSaved, onDelete: onDelete}
}

// Open shows a recipe read-only. The modal snapshots the recipe so
// later mutations of the caller's copy cannot leak in.
func (m *Modal) Open(recipe *domain.Recipe) error {
	if recipe == nil {
		return errors.New("modal: nil recipe")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateClosed {
		return fmt.Errorf("modal: already open (%s)", m.state)
	}
	m.snapshot = recipe.Clone()
	m.doc = nil
	m.saveErr = nil
	m.state = StateViewing
	m.log.Debug("modal: opened recipe %s", recipe.ID)
	return nil
}

// EnterEdit switches to edit mode, building an editable tree from the
// snapshot. Only valid while viewing.
func (m *Modal) EnterEdit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateViewing {
		return fmt.Errorf("modal: cannot edit from %s", m.state)
	}
	m.doc = render.Render(m.snapshot, true)
	m.saveErr = nil
	m.state = StateEditing
	return nil
}

// SetField writes text into the editable region identified by field
// (and index for list items; -1 for scalars). Only valid while editing.
func (m *Modal) SetField(field string, index int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateEditing {
		return fmt.Errorf("modal: not editing")
	}
	region := m.doc.Region(field, index)
	if region == nil {
		return fmt.Errorf("modal: no editable region %s[%d]", field, index)
	}
	region.Text = text
	return nil
}

// Save extracts the edited recipe and persists it. On success the
// server's copy becomes the new snapshot, the modal returns to viewing,
// and the saved callback fires once. On failure the modal stays in
// editing with every edit intact.
func (m *Modal) Save(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateEditing {
		m.mu.Unlock()
		return fmt.Errorf("modal: cannot save from %s", m.state)
	}
	edited := render.Extract(m.doc)
	m.mu.Unlock()

	saved, err := m.service.UpdateRecipe(ctx, edited)

	m.mu.Lock()
	if err != nil {
		m.saveErr = err
		m.mu.Unlock()
		m.log.Error("modal: save failed: %v", err)
		return err
	}
	m.snapshot = saved.Clone()
	m.doc = nil
	m.saveErr = nil
	m.state = StateViewing
	m.mu.Unlock()

	m.log.Info("modal: saved recipe %s", saved.ID)
	if m.onSaved != nil {
		return m.onSaved(ctx)
	}
	return nil
}

// Cancel discards all edits and restores the exact pre-edit snapshot.
func (m *Modal) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateEditing {
		return fmt.Errorf("modal: cannot cancel from %s", m.state)
	}
	m.doc = nil
	m.saveErr = nil
	m.state = StateViewing
	return nil
}

// RequestDelete asks for confirmation before deleting. Valid while
// viewing only — edits must be saved or cancelled first.
func (m *Modal) RequestDelete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateViewing {
		return fmt.Errorf("modal: cannot delete from %s", m.state)
	}
	m.state = StateConfirmingDelete
	return nil
}

// ConfirmDelete deletes the recipe, closes the modal, and fires the
// delete callback exactly once. On failure the modal returns to
// viewing with the recipe intact.
func (m *Modal) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateConfirmingDelete {
		m.mu.Unlock()
		return fmt.Errorf("modal: delete not pending")
	}
	id := m.snapshot.ID
	m.mu.Unlock()

	err := m.service.DeleteRecipe(ctx, id)

	m.mu.Lock()
	if err != nil {
		m.state = StateViewing
		m.mu.Unlock()
		m.log.Error("modal: delete failed: %v", err)
		return err
	}
	m.snapshot = nil
	m.doc = nil
	m.state = StateClosed
	m.mu.Unlock()

	m.log.Info("modal: deleted recipe %s", id)
	if m.onDelete != nil {
		return m.onDelete(ctx)
	}
	return nil
}

// CancelDelete abandons a pending delete and returns to viewing.
func (m *Modal) CancelDelete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConfirmingDelete {
		return fmt.Errorf("modal: delete not pending")
	}
	m.state = StateViewing
	return nil
}

// Close dismisses the modal. Closing while editing discards the
// in-flight edits without persisting anything.
func (m *Modal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateViewing, StateEditing, StateConfirmingDelete:
		m.snapshot = nil
		m.doc = nil
		m.saveErr = nil
		m.state = StateClosed
		return nil
	default:
		return fmt.Errorf("modal: not open")
	}
}

// State returns the current lifecycle state.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Recipe returns the snapshot currently shown, or nil when closed.
func (m *Modal) Recipe() *domain.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Document returns the presentational tree for the current state:
// editable while editing, read-only otherwise. Nil when closed.
func (m *Modal) Document() *render.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateEditing:
		return m.doc
	case StateViewing, StateConfirmingDelete:
		return render.Render(m.snapshot, false)
	default:
		return nil
	}
}

// SaveErr returns the error from the last failed save, cleared by a
// successful save or cancel.
func (m *Modal) SaveErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveErr
}
