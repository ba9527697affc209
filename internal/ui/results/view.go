package results

import (
	"fmt"

	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/ui"
	"github.com/tlecomte/glimpse/internal/ui/render"
	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// View renders the result list panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.listHeight()

	header := styles.T().S().Title.Render(
		render.TruncateAndPad(m.headerText(), innerWidth))
	separator := render.Separator(innerWidth)
	list := m.renderList(innerWidth, listHeight)

	content := header + "\n" + separator + "\n" + list

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderList(innerWidth, listHeight int) string {
	if len(m.posts) == 0 {
		empty := styles.T().S().Muted.Render("  no results")
		out := render.Pad(empty, innerWidth)
		for i := 0; i < listHeight-1; i++ {
			out += "\n" + render.EmptyLine(innerWidth)
		}
		return out
	}

	start, end := m.cursor.VisibleRange(len(m.posts), listHeight)

	out := ""
	for i := 0; i < listHeight; i++ {
		if i > 0 {
			out += "\n"
		}
		idx := start + i
		if idx >= end {
			out += render.EmptyLine(innerWidth)
			continue
		}
		out += m.renderRow(m.posts[idx], idx == m.cursor.Pos(), innerWidth)
	}
	return out
}

// renderRow renders one post: id, rating letter, score, dimensions,
// extension and artist, truncated to the panel width. The whole row is
// colored by rating, matching the board's badge colors.
func (m Model) renderRow(post booru.Post, selected bool, width int) string {
	t := styles.T()

	prefix := "  "
	if selected {
		prefix = "> "
	}

	text := fmt.Sprintf("%s#%-8d %s %5d  %dx%d %s  %s",
		prefix, post.ID, post.Rating,
		post.Score.Total, post.File.Width, post.File.Height,
		post.File.Ext, post.Artist())
	text = render.TruncateAndPad(text, width)

	style := t.Rating(post.Rating)
	if selected {
		style = style.Background(t.BgCursor).Bold(true)
	}
	return style.Render(text)
}
