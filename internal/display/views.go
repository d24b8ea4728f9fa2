package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/ram55git/recipediary/internal/gallery"
	"github.com/ram55git/recipediary/internal/modal"
	"github.com/ram55git/recipediary/internal/record"
	"github.com/ram55git/recipediary/internal/render"
)

// ── Record view ──────────────────────────────────────────────────

func (m model) renderRecordView() string {
	var b strings.Builder

	status := m.deps.Recorder.Status()
	elapsed := m.deps.Recorder.Elapsed()
	limit := m.deps.Config.Recording.MaxDuration

	switch status {
	case record.StatusRecording:
		b.WriteString("  " + recLiveStyle.Render("● REC") + "  " +
			timerStyle.Render(fmtClock(elapsed)+" / "+fmtClock(limit)) + "\n")
		b.WriteString("  " + m.renderProgress(elapsed, limit) + "\n")
	case record.StatusPaused:
		b.WriteString("  " + recPausedStyle.Render("‖ PAUSED") + "  " +
			timerStyle.Render(fmtClock(elapsed)+" / "+fmtClock(limit)) + "\n")
		b.WriteString("  " + m.renderProgress(elapsed, limit) + "\n")
	default:
		b.WriteString("  " + secondaryStyle.Render("Describe a recipe out loud and it becomes a structured card.") + "\n")
	}
	b.WriteString("\n")

	if m.artifact != nil {
		label := m.artifact.Filename
		if d := m.artifact.Duration; d > 0 {
			label += " (" + fmtClock(d) + ")"
		}
		b.WriteString("  " + recDoneStyle.Render("✓ Ready: ") + primaryStyle.Render(label) + "\n")
		b.WriteString("  " + secondaryStyle.Render(m.artifact.Origin.String()) + "\n\n")
	}

	if m.noCredits {
		b.WriteString(m.renderPurchaseCard() + "\n")
	}

	if m.pathPrompt {
		b.WriteString("  " + m.pathInput.View() + "\n")
		b.WriteString("  " + helpStyle.Render("enter: stage file · esc: cancel") + "\n")
		return b.String()
	}

	if m.lastProcess != nil && m.artifact == nil && status == record.StatusIdle {
		b.WriteString("  " + secondaryStyle.Render("Last recipe: "+m.lastProcess.Name) + "\n\n")
	}

	b.WriteString("  " + helpStyle.Render(m.recordHelp(status)) + "\n")
	return b.String()
}

func (m model) recordHelp(status record.Status) string {
	switch status {
	case record.StatusRecording:
		return "space: pause · s: stop · ctrl+c: quit"
	case record.StatusPaused:
		return "space: resume · s: stop · ctrl+c: quit"
	default:
		if m.artifact != nil {
			return "enter: create recipe · p: preview · x: discard · r: re-record · g: gallery · q: quit"
		}
		return "r: record · u: upload audio file · g: gallery · q: quit"
	}
}

func (m model) renderProgress(elapsed, limit time.Duration) string {
	const cells = 40
	frac := float64(elapsed) / float64(limit)
	if frac > 1 {
		frac = 1
	}
	fill := int(frac * cells)
	return progressFillStyle.Render(strings.Repeat("█", fill)) +
		progressRestStyle.Render(strings.Repeat("░", cells-fill))
}

func (m model) renderPurchaseCard() string {
	body := urgentStyle.Render("You're out of recipe credits.") + "\n" +
		primaryStyle.Render("Purchase more credits on the website, then press enter to retry.")
	return cardStyle.Render(body)
}

// ── Gallery view ─────────────────────────────────────────────────

func (m model) renderGalleryView() string {
	var b strings.Builder

	b.WriteString("  " + m.search.View() + "\n\n")

	switch m.deps.Gallery.State() {
	case gallery.StateLoading, gallery.StateInitial:
		b.WriteString("  " + secondaryStyle.Render("Loading recipes...") + "\n")
	case gallery.StateFailed:
		b.WriteString("  " + urgentStyle.Render("Couldn't load your recipes.") + "\n")
		b.WriteString("  " + secondaryStyle.Render("Press r to retry.") + "\n")
	case gallery.StateEmpty:
		b.WriteString("  " + secondaryStyle.Render(pluralize(m.deps.Gallery.Count(), "recipe")) + "\n\n")
		if m.deps.Gallery.Query() != "" {
			b.WriteString("  " + secondaryStyle.Render("No recipes match that search.") + "\n")
		} else {
			b.WriteString("  " + secondaryStyle.Render("No recipes yet. Record one to get started.") + "\n")
		}
	case gallery.StateLoaded:
		b.WriteString("  " + secondaryStyle.Render(pluralize(m.deps.Gallery.Count(), "recipe")) + "\n\n")
		for i, r := range m.deps.Gallery.Recipes() {
			b.WriteString(m.renderCard(r.Name, r.Description, r.CreatedAt, i == m.selected))
			b.WriteByte('\n')
		}
	}

	b.WriteString("\n  " + helpStyle.Render("↑/↓: select · enter: open · /: search · r: reload · esc: back · q: quit") + "\n")
	return b.String()
}

func (m model) renderCard(name, description, createdAt string, selected bool) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render(name))
	if description != "" {
		body.WriteByte('\n')
		body.WriteString(secondaryStyle.Render(truncate(description, 72)))
	}
	if createdAt != "" {
		body.WriteByte('\n')
		body.WriteString(helpStyle.Render(createdAt))
	}
	return style.Render(body.String())
}

// ── Modal view ───────────────────────────────────────────────────

func (m model) renderModalView() string {
	doc := m.deps.Modal.Document()
	if doc == nil {
		return ""
	}

	var b strings.Builder
	editing := m.deps.Modal.State() == modal.StateEditing

	for _, node := range doc.Children {
		b.WriteString(m.renderNode(node, editing))
	}

	switch m.deps.Modal.State() {
	case modal.StateConfirmingDelete:
		b.WriteString("\n" + cardStyle.Render(
			urgentStyle.Render("Delete this recipe?")+"\n"+
				primaryStyle.Render("y: delete · n: keep")) + "\n")
	case modal.StateEditing:
		b.WriteString("\n  " + helpStyle.Render("tab: next field · shift+tab: previous · ctrl+s: save · esc: discard edits") + "\n")
	default:
		b.WriteString("\n  " + helpStyle.Render("e: edit · d: delete · esc: back") + "\n")
	}
	return b.String()
}

func (m model) renderNode(node *render.Node, editing bool) string {
	switch node.Kind {
	case render.KindTitle:
		return "  " + titleStyle.Render(m.regionText(node, editing)) + "\n\n"

	case render.KindAuthor:
		return "  " + authorStyle.Render("by "+m.regionText(node, editing)) + "\n\n"

	case render.KindDescription:
		return "  " + primaryStyle.Render(m.regionText(node, editing)) + "\n\n"

	case render.KindMeta:
		var parts []string
		for _, item := range node.Children {
			parts = append(parts,
				secondaryStyle.Render(item.Label+": ")+primaryStyle.Render(m.regionText(item, editing)))
		}
		return "  " + strings.Join(parts, secondaryStyle.Render("  │  ")) + "\n\n"

	case render.KindSection:
		var b strings.Builder
		b.WriteString("  " + sectionStyle.Render(node.Label) + "\n")
		for _, child := range node.Children {
			b.WriteString(m.renderNode(child, editing))
		}
		b.WriteByte('\n')
		return b.String()

	case render.KindList:
		var b strings.Builder
		for i, item := range node.Children {
			marker := "• "
			if node.Field == render.FieldInstructions {
				marker = fmt.Sprintf("%d. ", i+1)
			}
			b.WriteString("    " + secondaryStyle.Render(marker) +
				primaryStyle.Render(m.regionText(item, editing)) + "\n")
		}
		return b.String()
	}
	return ""
}

// regionText renders a node's text, highlighting the active edit
// region with the live input and dimming the rest while editing.
func (m model) regionText(node *render.Node, editing bool) string {
	if !editing || !node.Editable {
		return node.Text
	}
	if m.regionIdx < len(m.regions) && m.regions[m.regionIdx] == node {
		return activeRegionStyle.Render(m.editInput.View())
	}
	text := node.Text
	if text == "" {
		text = "(empty)"
	}
	return editingRegionStyle.Render(text)
}

// ── Helpers ──────────────────────────────────────────────────────

// fmtClock formats a duration as mm:ss.
func fmtClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// truncate shortens s to at most max runes, reserving the last one for
// an ellipsis. Counting runes keeps multibyte text valid when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
