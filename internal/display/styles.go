package display

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Background(lipgloss.Color("#27272a"))

	creditsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	// Recording status colours: live, paused, stopped.
	recLiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	recPausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	recDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	progressFillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#94a3b8"))

	progressRestStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3f3f46"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#94a3b8")).
				Padding(0, 1)

	editingRegionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fde68a")).
				Underline(true)

	activeRegionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#27272a")).
				Background(lipgloss.Color("#fde68a"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)
