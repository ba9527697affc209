package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// Style configures the popup appearance.
type Style struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
}

// DefaultStyle returns the default popup style.
func DefaultStyle() Style {
	t := styles.T()
	return Style{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: t.Border,
		TitleStyle:  t.S().Title,
		FooterStyle: t.S().Subtle,
	}
}

// Dialog represents a simple centered popup with title, content, and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // 0 = auto-fit content
	Style   Style
}

// New creates a new dialog with default style.
func New() *Dialog {
	return &Dialog{
		Style: DefaultStyle(),
	}
}

// Render returns the dialog as a string ready to be overlaid.
// termWidth and termHeight are the terminal dimensions for centering.
func (p *Dialog) Render(termWidth, termHeight int) string {
	style := p.Style

	contentWidth := p.Width
	if contentWidth == 0 {
		// Auto-fit: find widest line
		contentWidth = maxLineWidth(p.Content)
		if p.Title != "" && len(p.Title) > contentWidth {
			contentWidth = len(p.Title)
		}
		if p.Footer != "" && len(p.Footer) > contentWidth {
			contentWidth = len(p.Footer)
		}
		contentWidth += 2 // padding
	}

	// Limit to terminal width
	maxWidth := termWidth - 4
	if contentWidth > maxWidth {
		contentWidth = maxWidth
	}

	innerWidth := contentWidth

	contentLineCount := strings.Count(p.Content, "\n") + 1
	lines := make([]string, 0, contentLineCount+4)

	if p.Title != "" {
		titleText := style.TitleStyle.Render(p.Title)
		lines = append(lines, centerLine(titleText, innerWidth), "")
	}

	for _, line := range strings.Split(p.Content, "\n") {
		if lipgloss.Width(line) > innerWidth {
			line = line[:innerWidth-3] + "..."
		}
		lines = append(lines, padLine(line, innerWidth))
	}

	if p.Footer != "" {
		lines = append(lines, "")
		footerText := style.FooterStyle.Render(p.Footer)
		lines = append(lines, centerLine(footerText, innerWidth))
	}

	content := strings.Join(lines, "\n")
	boxStyle := lipgloss.NewStyle().
		Border(style.Border).
		BorderForeground(style.BorderColor).
		Padding(0, 1).
		Width(innerWidth)

	return Center(boxStyle.Render(content), termWidth, termHeight)
}

// Center centers pre-rendered content in the terminal.
func Center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxHeight := len(lines)
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := max((termHeight-boxHeight)/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var result strings.Builder
	for i := 0; i < padTop; i++ {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

func maxLineWidth(s string) int {
	maxW := 0
	for _, line := range strings.Split(s, "\n") {
		w := lipgloss.Width(line)
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
