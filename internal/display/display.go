// Package display provides the terminal UI using Bubble Tea.
//
// The UI runs three views: the recording view (capture, upload,
// preview, submit), the gallery of saved recipes with server-side
// search, and the recipe modal (read-only detail, in-place editing,
// delete with confirmation). Slow operations run as tea.Cmds so the
// event loop never blocks on the network.
package display

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ram55git/recipediary/internal/config"
	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/gallery"
	"github.com/ram55git/recipediary/internal/logger"
	"github.com/ram55git/recipediary/internal/modal"
	"github.com/ram55git/recipediary/internal/record"
	"github.com/ram55git/recipediary/internal/render"
	"github.com/ram55git/recipediary/internal/upload"
)

// ── UI ───────────────────────────────────────────────────────────

// Deps are the collaborators the UI drives.
type Deps struct {
	Recorder *record.Controller
	Uploads  *upload.Handler
	Gallery  *gallery.Controller
	Modal    *modal.Modal
	Preview  domain.Previewer
	Service  domain.RecipeService
	Config   config.Config
	Log      *logger.Logger
}

// UI owns the Bubble Tea program. Call NewUI then Run (blocking).
type UI struct {
	program *tea.Program
	deps    Deps
}

// NewUI creates the display. Call Run() to start.
func NewUI(deps Deps) *UI {
	return &UI{deps: deps}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	u.program = tea.NewProgram(newModel(u.deps), tea.WithAltScreen())
	_, err := u.program.Run()
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type view int

const (
	viewRecord view = iota
	viewGallery
	viewModal
)

type model struct {
	deps Deps

	view   view
	width  int
	height int

	// Record view state.
	artifact    *domain.AudioArtifact
	pathInput   textinput.Model
	pathPrompt  bool
	busy        bool
	busyText    string
	errText     string
	noCredits   bool // show the purchase prompt card
	credits     int
	hasCredits  bool
	lastProcess *domain.Recipe // most recent generated recipe

	// Gallery view state.
	search    textinput.Model
	searching bool
	selected  int

	// Modal editing state.
	regions   []*render.Node
	regionIdx int
	editInput textinput.Model
}

// Messages.
type tickMsg time.Time

type creditsMsg struct {
	n   int
	err error
}

type galleryMsg struct{ err error }

type processedMsg struct {
	res *domain.ProcessResult
	err error
}

type savedMsg struct{ err error }

type deletedMsg struct{ err error }

type previewDoneMsg struct{ err error }

func newModel(deps Deps) model {
	search := textinput.New()
	search.Prompt = "search> "
	search.PromptStyle = secondaryStyle
	search.CharLimit = 120
	search.Width = 40

	path := textinput.New()
	path.Prompt = "file> "
	path.PromptStyle = secondaryStyle
	path.CharLimit = 500
	path.Width = 60

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 1000
	edit.Width = 60

	return model{
		deps:      deps,
		search:    search,
		pathInput: path,
		editInput: edit,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), m.fetchCreditsCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Commands ─────────────────────────────────────────────────────

func (m model) fetchCreditsCmd() tea.Cmd {
	svc := m.deps.Service
	return func() tea.Msg {
		n, err := svc.Credits(context.Background())
		return creditsMsg{n: n, err: err}
	}
}

func (m model) loadGalleryCmd(query string) tea.Cmd {
	g := m.deps.Gallery
	return func() tea.Msg {
		return galleryMsg{err: g.Load(context.Background(), query)}
	}
}

func (m model) processCmd(artifact *domain.AudioArtifact) tea.Cmd {
	svc := m.deps.Service
	cfg := m.deps.Config
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
		defer cancel()
		res, err := svc.ProcessRecipe(ctx, artifact, cfg.Language.Input, cfg.Language.Output)
		return processedMsg{res: res, err: err}
	}
}

func (m model) saveCmd() tea.Cmd {
	md := m.deps.Modal
	return func() tea.Msg {
		return savedMsg{err: md.Save(context.Background())}
	}
}

func (m model) deleteCmd() tea.Cmd {
	md := m.deps.Modal
	return func() tea.Msg {
		return deletedMsg{err: md.ConfirmDelete(context.Background())}
	}
}

func (m model) previewCmd(artifact *domain.AudioArtifact) tea.Cmd {
	p := m.deps.Preview
	return func() tea.Msg {
		return previewDoneMsg{err: p.Play(artifact)}
	}
}

// ── Update ───────────────────────────────────────────────────────

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 10 {
			m.editInput.Width = msg.Width - 10
			m.pathInput.Width = msg.Width - 10
		}
		return m, nil

	case tickMsg:
		// The recorder enforces the cap itself; the tick only redraws
		// the timer and picks up a cap-stopped artifact.
		if artifact, err := m.deps.Recorder.TakeAutoStop(); artifact != nil || err != nil {
			if err != nil {
				m.errText = recordErrText(err)
			} else {
				m.artifact = artifact
				m.errText = ""
			}
		}
		return m, tickCmd()

	case creditsMsg:
		if msg.err == nil {
			m.credits = msg.n
			m.hasCredits = true
		} else {
			m.deps.Log.Warn("display: credits fetch failed: %v", msg.err)
		}
		return m, nil

	case galleryMsg:
		m.busy = false
		if m.selected >= m.deps.Gallery.Count() {
			m.selected = 0
		}
		return m, nil

	case processedMsg:
		return m.handleProcessed(msg)

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.regions = nil
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.view = viewGallery
		return m, nil

	case previewDoneMsg:
		if msg.err != nil {
			m.errText = "Preview failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink etc.) goes to the focused input.
	var cmd tea.Cmd
	switch {
	case m.pathPrompt:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	case m.deps.Modal.State() == modal.StateEditing:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

func (m model) handleProcessed(msg processedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, domain.ErrInsufficientCredits):
			// The artifact stays staged so a retry after purchase works.
			m.noCredits = true
			m.errText = ""
		default:
			m.errText = "Processing failed: " + msg.err.Error() + " (press enter to retry)"
		}
		return m, nil
	}

	m.errText = ""
	m.noCredits = false
	m.lastProcess = msg.res.Recipe
	if msg.res.HasCredits {
		m.credits = msg.res.CreditsRemaining
		m.hasCredits = true
	}

	// The artifact is consumed; show the result and refresh the list.
	m.artifact = nil
	_ = m.deps.Recorder.Reset()
	m.deps.Uploads.Clear()

	if err := m.deps.Modal.Open(msg.res.Recipe); err == nil {
		m.view = viewModal
	}
	return m, m.loadGalleryCmd(m.deps.Gallery.Query())
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.view {
	case viewRecord:
		return m.handleRecordKey(msg)
	case viewGallery:
		return m.handleGalleryKey(msg)
	case viewModal:
		return m.handleModalKey(msg)
	}
	return m, nil
}

// ── Record view keys ─────────────────────────────────────────────

func (m model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pathPrompt {
		switch msg.Type {
		case tea.KeyEnter:
			path := strings.TrimSpace(m.pathInput.Value())
			m.pathPrompt = false
			m.pathInput.Blur()
			m.pathInput.Reset()
			if path == "" {
				return m, nil
			}
			artifact, err := m.deps.Uploads.Select(path)
			if err != nil {
				m.errText = uploadErrText(err)
				return m, nil
			}
			m.errText = ""
			m.artifact = artifact
			return m, nil
		case tea.KeyEsc:
			m.pathPrompt = false
			m.pathInput.Blur()
			m.pathInput.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "r":
		if err := m.startRecording(); err != nil {
			m.errText = recordErrText(err)
		} else {
			m.errText = ""
			m.noCredits = false
		}
		return m, nil

	case " ":
		switch m.deps.Recorder.Status() {
		case record.StatusRecording:
			if err := m.deps.Recorder.Pause(); err != nil {
				m.errText = err.Error()
			}
		case record.StatusPaused:
			if err := m.deps.Recorder.Resume(); err != nil {
				m.errText = err.Error()
			}
		}
		return m, nil

	case "s":
		artifact, err := m.deps.Recorder.Stop()
		if err != nil {
			m.errText = recordErrText(err)
			return m, nil
		}
		m.errText = ""
		m.artifact = artifact
		return m, nil

	case "u":
		m.pathPrompt = true
		m.pathInput.Focus()
		return m, nil

	case "p":
		if m.artifact == nil {
			return m, nil
		}
		m.deps.Preview.Stop()
		return m, m.previewCmd(m.artifact)

	case "enter":
		if m.artifact == nil || m.artifact.Empty() {
			return m, nil
		}
		m.busy = true
		m.busyText = "Processing your recipe..."
		return m, m.processCmd(m.artifact)

	case "x":
		m.deps.Preview.Stop()
		_ = m.deps.Recorder.Reset()
		m.deps.Uploads.Clear()
		m.artifact = nil
		m.errText = ""
		m.noCredits = false
		return m, nil

	case "g", "tab":
		m.view = viewGallery
		m.busy = true
		m.busyText = "Loading recipes..."
		return m, m.loadGalleryCmd(m.deps.Gallery.Query())
	}

	return m, nil
}

func (m *model) startRecording() error {
	m.deps.Preview.Stop()
	if m.deps.Recorder.Status() != record.StatusIdle {
		if err := m.deps.Recorder.Reset(); err != nil {
			return err
		}
	}
	m.deps.Uploads.Clear()
	m.artifact = nil
	return m.deps.Recorder.Start(context.Background())
}

// ── Gallery view keys ────────────────────────────────────────────

func (m model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.busy = true
			m.busyText = "Searching..."
			m.selected = 0
			return m, m.loadGalleryCmd(strings.TrimSpace(m.search.Value()))
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil

	case "r":
		m.busy = true
		m.busyText = "Loading recipes..."
		return m, m.loadGalleryCmd(m.deps.Gallery.Query())

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < m.deps.Gallery.Count()-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		recipes := m.deps.Gallery.Recipes()
		if m.selected < len(recipes) {
			if err := m.deps.Modal.Open(recipes[m.selected]); err == nil {
				m.view = viewModal
				m.errText = ""
			}
		}
		return m, nil

	case "g", "tab", "esc":
		m.view = viewRecord
		return m, nil
	}

	return m, nil
}

// ── Modal view keys ──────────────────────────────────────────────

func (m model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.deps.Modal.State() {
	case modal.StateViewing:
		switch msg.String() {
		case "e":
			if err := m.deps.Modal.EnterEdit(); err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.regions = m.deps.Modal.Document().Regions()
			m.regionIdx = 0
			m.focusRegion()
			return m, nil
		case "d":
			if err := m.deps.Modal.RequestDelete(); err != nil {
				m.errText = err.Error()
			}
			return m, nil
		case "esc", "q":
			if err := m.deps.Modal.Close(); err == nil {
				m.view = viewGallery
				m.errText = ""
			}
			return m, nil
		}
		return m, nil

	case modal.StateConfirmingDelete:
		switch msg.String() {
		case "y":
			m.busy = true
			m.busyText = "Deleting..."
			return m, m.deleteCmd()
		case "n", "esc":
			_ = m.deps.Modal.CancelDelete()
			return m, nil
		}
		return m, nil

	case modal.StateEditing:
		switch msg.Type {
		case tea.KeyEsc:
			_ = m.deps.Modal.Cancel()
			m.regions = nil
			m.errText = ""
			m.editInput.Blur()
			return m, nil
		case tea.KeyTab:
			m.commitRegion()
			m.regionIdx = (m.regionIdx + 1) % len(m.regions)
			m.focusRegion()
			return m, nil
		case tea.KeyShiftTab:
			m.commitRegion()
			m.regionIdx = (m.regionIdx - 1 + len(m.regions)) % len(m.regions)
			m.focusRegion()
			return m, nil
		case tea.KeyCtrlS:
			m.commitRegion()
			m.busy = true
			m.busyText = "Saving..."
			return m, m.saveCmd()
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// focusRegion loads the active region's text into the edit input.
func (m *model) focusRegion() {
	if m.regionIdx < len(m.regions) {
		m.editInput.SetValue(m.regions[m.regionIdx].Text)
		m.editInput.CursorEnd()
		m.editInput.Focus()
	}
}

// commitRegion writes the edit input back into the active region.
func (m *model) commitRegion() {
	if m.regionIdx < len(m.regions) {
		region := m.regions[m.regionIdx]
		_ = m.deps.Modal.SetField(region.Field, region.Index, m.editInput.Value())
		region.Text = m.editInput.Value()
	}
}

// ── Error presentation ───────────────────────────────────────────

func recordErrText(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Sign in to record a recipe."
	case errors.Is(err, domain.ErrPermissionDenied):
		return "Microphone access was denied. Grant access and try again."
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return "No microphone is available on this system."
	case errors.Is(err, domain.ErrEmptyRecording):
		return "Nothing was recorded. Try again."
	default:
		return err.Error()
	}
}

func uploadErrText(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Sign in to upload an audio file."
	case errors.Is(err, domain.ErrInvalidMediaType):
		return "That file is not an audio file."
	default:
		return err.Error()
	}
}

// ── View ─────────────────────────────────────────────────────────

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.view {
	case viewRecord:
		b.WriteString(m.renderRecordView())
	case viewGallery:
		b.WriteString(m.renderGalleryView())
	case viewModal:
		b.WriteString(m.renderModalView())
	}

	if m.busy {
		b.WriteString("\n" + secondaryStyle.Render("  "+m.busyText))
	}
	if m.errText != "" {
		b.WriteString("\n" + urgentStyle.Render("  "+m.errText))
	}

	return b.String()
}

func (m model) renderHeader() string {
	left := " Recipe Diary"
	right := ""
	if m.hasCredits {
		right = creditsStyle.Render(creditsLabel(m.credits)) + " "
	}

	w := m.width
	if w <= 0 {
		w = 80
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(w).Render(left + strings.Repeat(" ", gap) + right)
}

func creditsLabel(n int) string {
	return pluralize(n, "credit")
}
