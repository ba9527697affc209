package searchform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func TestSubmitSearch(t *testing.T) {
	m := New()
	m.SetSize(80, 24)
	m = typeString(m, "canine rating:s")

	_, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(SearchSubmittedMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want SearchSubmittedMsg", cmd())
	}
	if msg.Query != "canine rating:s" {
		t.Errorf("Query = %q", msg.Query)
	}
}

func TestSubmitEmptySearchIsNoop(t *testing.T) {
	m := New()
	m = typeString(m, "   ")
	if _, cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("blank query produced a command")
	}
}

func TestTabSwitchesToPostID(t *testing.T) {
	m := New()
	m, _ = press(m, tea.KeyTab)
	m = typeString(m, "12345")

	_, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(OpenIDSubmittedMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want OpenIDSubmittedMsg", cmd())
	}
	if msg.ID != 12345 {
		t.Errorf("ID = %d, want 12345", msg.ID)
	}
}

func TestInvalidPostIDIsNoop(t *testing.T) {
	m := New()
	m, _ = press(m, tea.KeyTab)
	m = typeString(m, "abc")
	if _, cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("non-numeric id produced a command")
	}
}

func TestHistoryRecall(t *testing.T) {
	m := New()
	m.SetHistory([]string{"newest", "older", "oldest"})
	m = typeString(m, "draft")

	m, _ = press(m, tea.KeyUp)
	if got := m.tags.Value(); got != "newest" {
		t.Errorf("after up: %q, want newest", got)
	}
	m, _ = press(m, tea.KeyUp)
	m, _ = press(m, tea.KeyUp)
	if got := m.tags.Value(); got != "oldest" {
		t.Errorf("after 3x up: %q, want oldest", got)
	}

	// Up at the oldest entry stays put.
	m, _ = press(m, tea.KeyUp)
	if got := m.tags.Value(); got != "oldest" {
		t.Errorf("past oldest: %q, want oldest", got)
	}

	// Down all the way restores the draft.
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	if got := m.tags.Value(); got != "draft" {
		t.Errorf("after returning: %q, want draft", got)
	}
}

func TestViewContainsBothFields(t *testing.T) {
	m := New()
	m.SetSize(80, 24)

	view := m.View()
	for _, want := range []string{"Search", "Open post", "glimpse"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
