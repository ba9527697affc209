// Package results renders the search result list panel.
package results

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/ui"
	"github.com/tlecomte/glimpse/internal/ui/cursor"
)

// OpenPostMsg is sent when the user selects a post to view.
type OpenPostMsg struct {
	Post booru.Post
}

// SelectionChangedMsg is sent when the cursor moves to a different post.
type SelectionChangedMsg struct {
	Post booru.Post
}

// Model represents the result list state.
type Model struct {
	ui.Base
	query  string
	posts  []booru.Post
	cursor cursor.Cursor
}

// New creates an empty result list.
func New() Model {
	return Model{
		cursor: cursor.New(ui.ScrollMargin),
	}
}

// SetPosts replaces the list content and resets the cursor.
func (m *Model) SetPosts(query string, posts []booru.Post) {
	m.query = query
	m.posts = posts
	m.cursor.Reset()
}

// Query returns the search query the current results belong to.
func (m Model) Query() string {
	return m.query
}

// Len returns the number of posts in the list.
func (m Model) Len() int {
	return len(m.posts)
}

// Selected returns the post under the cursor, or nil for an empty list.
func (m Model) Selected() *booru.Post {
	if len(m.posts) == 0 {
		return nil
	}
	return &m.posts[m.cursor.Pos()]
}

// Update handles messages for the result list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "enter":
		if post := m.Selected(); post != nil {
			p := *post
			return m, func() tea.Msg { return OpenPostMsg{Post: p} }
		}
	default:
		before := m.cursor.Pos()
		if m.cursor.HandleKey(key, len(m.posts), m.listHeight()) &&
			m.cursor.Pos() != before {
			p := m.posts[m.cursor.Pos()]
			return m, func() tea.Msg { return SelectionChangedMsg{Post: p} }
		}
	}

	return m, nil
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

func (m Model) headerText() string {
	pos := 0
	if len(m.posts) > 0 {
		pos = m.cursor.Pos() + 1
	}
	return fmt.Sprintf("Results (%d/%d) %s", pos, len(m.posts), m.query)
}
