package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComposePatchesVisibleSpan(t *testing.T) {
	screen := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")
	dialog := "\n   [box]"

	got := strings.Split(Compose(screen, dialog, 10), "\n")

	if got[0] != ".........." {
		t.Errorf("row 0 = %q, want untouched screen", got[0])
	}
	if got[1] != "...[box].." {
		t.Errorf("row 1 = %q, want %q", got[1], "...[box]..")
	}
	if got[2] != ".........." {
		t.Errorf("row 2 = %q, want untouched screen", got[2])
	}
}

func TestComposeBlankDialogRowsLeaveScreen(t *testing.T) {
	got := Compose("abc\ndef", "\n  ", 3)
	if got != "abc\ndef" {
		t.Errorf("got %q, screen should be untouched by blank dialog rows", got)
	}
}

func TestComposeKeepsStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hi")
	got := Compose("....", " "+styled, 4)

	if !strings.Contains(got, "hi") {
		t.Fatalf("got %q, dialog text lost", got)
	}
	if !strings.HasPrefix(got, ".") || !strings.HasSuffix(got, ".") {
		t.Errorf("got %q, screen edges should survive", got)
	}
}

func TestComposeDialogTallerThanScreen(t *testing.T) {
	got := Compose("ab", "xx\nyy\nzz", 2)
	if got != "xx" {
		t.Errorf("got %q, extra dialog rows should be dropped", got)
	}
}
