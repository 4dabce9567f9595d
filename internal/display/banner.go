package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// Tagline is printed centred under the banner art.
const Tagline = "what can I make tonight?"

// RenderBanner returns the banner art and tagline centred for the current
// terminal width.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	var b strings.Builder
	for _, l := range layoutBanner(bannerRaw, Tagline, width) {
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// layoutBanner pads the art and tagline so the block sits centred in width
// columns, with the tagline centred under the art. Widths are measured in
// terminal cells.
func layoutBanner(art, tagline string, width int) []string {
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")

	maxW := lipgloss.Width(tagline)
	for _, l := range lines {
		maxW = max(maxW, lipgloss.Width(l))
	}
	pad := ""
	if width > maxW {
		pad = strings.Repeat(" ", (width-maxW)/2)
	}

	out := make([]string, 0, len(lines)+2)
	for _, l := range lines {
		out = append(out, pad+l)
	}
	out = append(out, "", pad+strings.Repeat(" ", (maxW-lipgloss.Width(tagline))/2)+tagline)
	return out
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
