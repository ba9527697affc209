// Package searchform renders the query input screen: a tag search field
// and a direct post-ID field, with Tab switching between them.
package searchform

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tlecomte/glimpse/internal/ui"
	"github.com/tlecomte/glimpse/internal/ui/render"
	"github.com/tlecomte/glimpse/internal/ui/styles"
)

// SearchSubmittedMsg is sent when the user submits a tag query.
type SearchSubmittedMsg struct {
	Query string
}

// OpenIDSubmittedMsg is sent when the user submits a post ID.
type OpenIDSubmittedMsg struct {
	ID int64
}

type field int

const (
	fieldTags field = iota
	fieldID
)

// Model represents the search form state.
type Model struct {
	ui.Base
	tags    textinput.Model
	postID  textinput.Model
	active  field
	history []string // most recent first
	histPos int      // -1 = editing, >= 0 = browsing history
	draft   string   // text before history browsing began
}

// New creates the form with the tag field focused.
func New() Model {
	tags := textinput.New()
	tags.Placeholder = "tags, e.g. canine rating:s order:score"
	tags.CharLimit = 256
	tags.Width = 50
	tags.Focus()

	postID := textinput.New()
	postID.Placeholder = "post id"
	postID.CharLimit = 10
	postID.Width = 50

	return Model{
		tags:    tags,
		postID:  postID,
		histPos: -1,
	}
}

// SetHistory replaces the recent-search list used by up/down recall.
func (m *Model) SetHistory(queries []string) {
	m.history = queries
	m.histPos = -1
}

// SetQuery pre-fills the tag field, used when restoring the last session.
func (m *Model) SetQuery(query string) {
	m.tags.SetValue(query)
	m.tags.CursorEnd()
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key messages for whichever field is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab":
			m.switchField()
			return m, nil
		case "enter":
			return m, m.submit()
		case "up":
			if m.active == fieldTags {
				m.browseHistory(1)
				return m, nil
			}
		case "down":
			if m.active == fieldTags {
				m.browseHistory(-1)
				return m, nil
			}
		default:
			// Any edit leaves history-browsing mode.
			m.histPos = -1
		}
	}

	var cmd tea.Cmd
	if m.active == fieldTags {
		m.tags, cmd = m.tags.Update(msg)
	} else {
		m.postID, cmd = m.postID.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchField() {
	if m.active == fieldTags {
		m.active = fieldID
		m.tags.Blur()
		m.postID.Focus()
	} else {
		m.active = fieldTags
		m.postID.Blur()
		m.tags.Focus()
	}
}

// browseHistory moves through recent searches. dir is +1 for older,
// -1 for newer; stepping past the newest restores the draft.
func (m *Model) browseHistory(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.histPos == -1 {
		if dir < 0 {
			return
		}
		m.draft = m.tags.Value()
	}
	pos := m.histPos + dir
	if pos >= len(m.history) {
		return
	}
	if pos < 0 {
		m.histPos = -1
		m.tags.SetValue(m.draft)
		m.tags.CursorEnd()
		return
	}
	m.histPos = pos
	m.tags.SetValue(m.history[pos])
	m.tags.CursorEnd()
}

func (m *Model) submit() tea.Cmd {
	if m.active == fieldID {
		id, err := strconv.ParseInt(strings.TrimSpace(m.postID.Value()), 10, 64)
		if err != nil || id <= 0 {
			return nil
		}
		return func() tea.Msg { return OpenIDSubmittedMsg{ID: id} }
	}

	query := strings.TrimSpace(m.tags.Value())
	if query == "" {
		return nil
	}
	m.histPos = -1
	return func() tea.Msg { return SearchSubmittedMsg{Query: query} }
}

// View renders the centered form with the application banner.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	label := func(text string, active bool) string {
		if active {
			return t.S().Title.Render(text)
		}
		return t.S().Muted.Render(text)
	}

	var b strings.Builder
	b.WriteString(styles.GradientTitle("glimpse"))
	b.WriteString("\n\n")
	b.WriteString(label("Search", m.active == fieldTags))
	b.WriteString("\n")
	b.WriteString(m.tags.View())
	b.WriteString("\n\n")
	b.WriteString(label("Open post", m.active == fieldID))
	b.WriteString("\n")
	b.WriteString(m.postID.View())
	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render(
		render.Truncate("tab switch  enter submit  up/down history  q quit", m.Width()-4)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, box)
}
