// Package gauge renders a download progress bar with humanized byte counts.
package gauge

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tlecomte/glimpse/internal/ui"
	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// Model holds the current progress of a download.
type Model struct {
	label      string
	downloaded int64
	total      int64 // 0 when the server sent no Content-Length
}

// New creates a gauge with a label shown left of the bar.
func New(label string) Model {
	return Model{label: label}
}

// SetProgress updates the byte counters.
func (m *Model) SetProgress(downloaded, total int64) {
	m.downloaded = downloaded
	m.total = total
}

// Ratio returns progress in [0, 1], or 0 when the total is unknown.
func (m Model) Ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	r := float64(m.downloaded) / float64(m.total)
	return min(r, 1)
}

// View renders the gauge at the given width.
func (m Model) View(width int) string {
	t := styles.T()

	counts := humanize.Bytes(uint64(max(m.downloaded, 0)))
	if m.total > 0 {
		counts = fmt.Sprintf("%s / %s", counts, humanize.Bytes(uint64(m.total)))
	}

	header := m.label
	if header != "" {
		header = t.S().Title.Render(header) + "  "
	}
	header += t.S().Muted.Render(counts)

	barWidth := width
	if barWidth < ui.MinProgressBarWidth {
		return header
	}

	filled := int(m.Ratio() * float64(barWidth))
	filled = min(filled, barWidth)

	bar := t.S().Success.Render(strings.Repeat("━", filled)) +
		t.S().Subtle.Render(strings.Repeat("─", barWidth-filled))

	return header + "\n" + bar
}
