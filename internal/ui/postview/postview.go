// Package postview renders the post detail popup: image region on the
// left, scrollable metadata on the right.
package postview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/ui"
	"github.com/tlecomte/glimpse/internal/ui/render"
	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// Layout constants for the detail popup.
const (
	widthPct  = 80 // popup width, percent of screen
	heightPct = 70
	gutter    = 2 // columns between image region and metadata
)

// Model represents the post detail view.
type Model struct {
	ui.Base
	post   booru.Post
	lines  []string // pre-built metadata lines
	scroll int
}

// New creates an empty post view.
func New() Model {
	return Model{}
}

// SetPost loads a post into the view and resets scrolling.
// width and height are the terminal dimensions.
func (m *Model) SetPost(post booru.Post, width, height int) {
	m.post = post
	m.scroll = 0
	m.SetSize(width, height)
	m.lines = buildMetadata(post)
}

// Post returns the post currently shown.
func (m Model) Post() booru.Post {
	return m.post
}

// box returns the outer popup geometry: top-left corner (1-based
// terminal coordinates) and size.
func (m Model) box() (top, left, width, height int) {
	w, h := m.Width()*widthPct/100, m.Height()*heightPct/100
	return (m.Height()-h)/2 + 1, (m.Width()-w)/2 + 1, w, h
}

// contentSize returns the inner content dimensions after border and padding.
func (m Model) contentSize() (width, height int) {
	_, _, w, h := m.box()
	return w - 6, h - 4
}

// imageCols returns the width in cells reserved for the image region.
func (m Model) imageCols() int {
	w, _ := m.contentSize()
	return w / 2
}

// ImageOrigin returns the 1-based terminal row and column where the
// image region starts.
func (m Model) ImageOrigin() (row, col int) {
	top, left, _, _ := m.box()
	return top + 2, left + 3 // border + padding
}

// ImageArea returns the image region size in cells.
func (m Model) ImageArea() (cols, rows int) {
	_, h := m.contentSize()
	return m.imageCols(), h
}

// Update handles scroll keys for the metadata column.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	_, rows := m.contentSize()
	maxScroll := max(len(m.lines)-rows, 0)

	switch keyMsg.String() {
	case "j", "down":
		m.scroll = min(m.scroll+1, maxScroll)
	case "k", "up":
		m.scroll = max(m.scroll-1, 0)
	case "g", "home":
		m.scroll = 0
	case "G", "end":
		m.scroll = maxScroll
	}

	return m, nil
}

// View renders the popup. The image region is left blank; the caller
// overlays the actual image at ImageOrigin.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	imgCols := m.imageCols()
	metaWidth, rows := m.contentSize()
	metaWidth -= imgCols + gutter
	if metaWidth < 1 {
		metaWidth = 1
	}

	blank := strings.Repeat(" ", imgCols+gutter)

	visible := m.lines[min(m.scroll, len(m.lines)):]
	if len(visible) > rows {
		visible = visible[:rows]
	}

	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		line := ""
		if i < len(visible) {
			line = visible[i]
		}
		out[i] = blank + render.TruncateAndPad(line, metaWidth)
	}

	content := strings.Join(out, "\n")

	_, _, w, h := m.box()
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(w - 2).
		Height(h - 2).
		Padding(1, 2)

	return boxStyle.Render(content)
}

// buildMetadata renders the post fields into display lines.
func buildMetadata(post booru.Post) []string {
	t := styles.T()
	title := t.S().Title
	muted := t.S().Muted

	var lines []string
	add := func(label, value string) {
		lines = append(lines, title.Render(label)+" "+render.Sanitize(value))
	}

	add("Post", fmt.Sprintf("#%d", post.ID))
	lines = append(lines,
		title.Render("Rating")+" "+t.Rating(post.Rating).Render(ratingName(post.Rating)))
	add("Score", fmt.Sprintf("%d (up %d / down %d)",
		post.Score.Total, post.Score.Up, post.Score.Down))
	add("Favorites", fmt.Sprintf("%d", post.FavCount))
	add("Size", fmt.Sprintf("%dx%d %s (%s)",
		post.File.Width, post.File.Height, post.File.Ext,
		humanize.Bytes(uint64(post.File.Size))))
	if created, err := time.Parse(time.RFC3339, post.CreatedAt); err == nil {
		add("Posted", created.Format(time.DateOnly))
	}

	lines = append(lines, "")
	lines = append(lines, tagSection("Artist", post.Tags.Artist)...)
	lines = append(lines, tagSection("Character", post.Tags.Character)...)
	lines = append(lines, tagSection("Species", post.Tags.Species)...)
	lines = append(lines, tagSection("General", post.Tags.General)...)

	if post.Description != "" {
		lines = append(lines, "", title.Render("Description"))
		for _, desc := range strings.Split(post.Description, "\n") {
			lines = append(lines, render.Sanitize(desc))
		}
	}

	lines = append(lines, "",
		muted.Render("d download  o browser  f fullscreen  esc back"))

	return lines
}

// tagSection renders a tag category header plus one line per tag.
// Empty categories are skipped entirely.
func tagSection(name string, tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	lines := make([]string, 0, len(tags)+1)
	lines = append(lines, styles.T().S().Title.Render(name))
	for _, tag := range tags {
		lines = append(lines, "  "+render.Sanitize(tag))
	}
	return lines
}

func ratingName(r string) string {
	switch r {
	case "s":
		return "safe"
	case "q":
		return "questionable"
	case "e":
		return "explicit"
	default:
		return r
	}
}
