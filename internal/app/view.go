package app

import (
	"strings"

	"github.com/tlecomte/glimpse/internal/ui/overlay"
	"github.com/tlecomte/glimpse/internal/ui/popup"
	"github.com/tlecomte/glimpse/internal/ui/render"
	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// View implements tea.Model. Image escape sequences are appended after
// the text layout: they position themselves with absolute-cursor moves
// and occupy no cells.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var view string
	switch m.screen {
	case ScreenInput:
		view = m.form.View()

	case ScreenLoading:
		dialog := popup.New()
		dialog.Content = m.loadingText
		dialog.Footer = "esc cancel"
		view = dialog.Render(m.width, m.height)

	case ScreenResults:
		view = m.renderResults()

	case ScreenViewing:
		view = m.renderViewing()

	case ScreenFullImage:
		view = m.renderFullImage()

	case ScreenError:
		dialog := popup.New()
		dialog.Title = "Error"
		dialog.Content = styles.T().S().Error.Render(m.errText)
		dialog.Footer = "press any key"
		view = dialog.Render(m.width, m.height)
	}

	return m.trailer + view
}

func (m Model) renderResults() string {
	view := m.results.View()

	if m.preview != nil {
		// Thumbnail in the column right of the list.
		view += m.preview.Render(2, m.listWidth()+3)
	}
	return view
}

func (m Model) renderViewing() string {
	base := m.blankScreen()
	if m.results.Len() > 0 {
		base = m.results.View()
	}

	view := overlay.Compose(base, popup.Center(m.post.View(), m.width, m.height), m.width)

	if m.downloading {
		dialog := popup.New()
		dialog.Title = "Downloading"
		dialog.Content = m.dlGauge.View(40)
		view = overlay.Compose(view, dialog.Render(m.width, m.height), m.width)
		// The image is deliberately not re-placed under the modal.
		return view
	}

	if m.dlDonePath != "" {
		notice := styles.T().S().Success.Render(
			render.Truncate("Saved "+m.dlDonePath, m.width-2))
		lines := strings.Split(view, "\n")
		if len(lines) > 0 {
			lines[len(lines)-1] = notice
		}
		view = strings.Join(lines, "\n")
	}

	if m.image != nil {
		row, col := m.post.ImageOrigin()
		view += m.image.Render(row, col)
	}
	return view
}

func (m Model) renderFullImage() string {
	if m.image == nil {
		return popup.Center(styles.T().S().Muted.Render("no image"), m.width, m.height)
	}

	// Center the image in the blank screen.
	cols, rows := m.image.Size()
	row := max((m.height-rows)/2+1, 1)
	col := max((m.width-cols)/2+1, 1)

	return m.blankScreen() + m.image.Render(row, col)
}

func (m Model) blankScreen() string {
	return strings.TrimRight(
		strings.Repeat(strings.Repeat(" ", m.width)+"\n", m.height), "\n")
}
