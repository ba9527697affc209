// Package overlay draws popup dialogs over an already-rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose lays dialog over screen, replacing screen cells where the
// dialog has visible content and leaving the rest untouched. Both
// strings may carry ANSI styling; widths are measured in display
// columns, not bytes.
func Compose(screen, dialog string, width int) string {
	screenLines := strings.Split(screen, "\n")
	dialogLines := strings.Split(dialog, "\n")

	for i, dialogLine := range dialogLines {
		if i >= len(screenLines) {
			break
		}

		plain := ansi.Strip(dialogLine)
		if strings.TrimSpace(plain) == "" {
			continue // nothing visible on this dialog row
		}

		// The dialog's visible span on this row, in display columns.
		startCol := 0
		for _, r := range plain {
			if r != ' ' {
				break
			}
			startCol++
		}
		trimmed := strings.TrimRight(plain, " ")
		endCol := startCol + ansi.StringWidth(trimmed[startCol:])

		// Cut keeps the dialog's styling sequences intact.
		content := ansi.Cut(dialogLine, startCol, endCol)

		screenLine := screenLines[i]
		if w := ansi.StringWidth(ansi.Strip(screenLine)); w < width {
			screenLine += strings.Repeat(" ", width-w)
		}

		patched := ansi.Cut(screenLine, 0, startCol) + content
		if endCol < width {
			patched += ansi.Cut(screenLine, endCol, width)
		}
		screenLines[i] = patched
	}

	return strings.Join(screenLines, "\n")
}
