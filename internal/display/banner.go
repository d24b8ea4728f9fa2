package display

import (
	_ "embed"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art horizontally centred for the
// current terminal width. The art width is measured in runes since
// banner.txt mixes ASCII with box-drawing glyphs. To change the banner
// just replace banner.txt.
func RenderBanner() string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	artW := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > artW {
			artW = n
		}
	}

	indent := ""
	if width := termWidth(); width > artW {
		indent = strings.Repeat(" ", (width-artW)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
