// Package app contains the root bubbletea model and the key-driven
// screen state machine.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlecomte/glimpse/internal/anim"
	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/config"
	"github.com/tlecomte/glimpse/internal/imgproto"
	"github.com/tlecomte/glimpse/internal/state"
	"github.com/tlecomte/glimpse/internal/ui/gauge"
	"github.com/tlecomte/glimpse/internal/ui/postview"
	"github.com/tlecomte/glimpse/internal/ui/results"
	"github.com/tlecomte/glimpse/internal/ui/searchform"
)

// Screen identifies the active application screen.
type Screen int

const (
	ScreenInput Screen = iota
	ScreenLoading
	ScreenResults
	ScreenViewing
	ScreenFullImage
	ScreenError
)

// Model is the root application model containing all state.
type Model struct {
	cfg    *config.Config
	client *booru.Client
	states *state.Manager
	proto  imgproto.Protocol

	screen Screen

	form    searchform.Model
	results results.Model
	post    postview.Model
	dlGauge gauge.Model

	// preview shown next to the result list; stale async loads are
	// discarded by comparing post IDs against the current selection
	preview anim.Handle

	// image shown on the viewing and full-image screens
	image anim.Handle

	// ticking is true while a tick loop is in flight, so a second
	// image load never arms a second loop.
	ticking bool

	downloading bool
	downloadCh  chan booru.Progress
	dlDonePath  string

	loadingText string
	errText     string

	// trailer carries terminal cleanup sequences (image deletes) that
	// must reach the terminal on the next paint
	trailer string

	width, height int
}

// New creates the application model from its collaborators.
func New(cfg *config.Config, client *booru.Client, states *state.Manager, proto imgproto.Protocol) Model {
	m := Model{
		cfg:     cfg,
		client:  client,
		states:  states,
		proto:   proto,
		screen:  ScreenInput,
		form:    searchform.New(),
		results: results.New(),
		post:    postview.New(),
		dlGauge: gauge.New("Downloading"),
	}

	if states != nil {
		if recent, err := states.RecentSearches(50); err == nil {
			m.form.SetHistory(recent)
		}
		if session, err := states.GetSession(); err == nil && session != nil {
			m.form.SetQuery(session.LastQuery)
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// imagesEnabled reports whether a terminal graphics protocol is available.
func (m Model) imagesEnabled() bool {
	return m.proto != nil
}

// closePreview releases the result-list preview handle, queueing its
// terminal cleanup for the next paint.
func (m *Model) closePreview() {
	if m.preview != nil {
		m.trailer += m.preview.Close()
		m.preview = nil
	}
}

// closeImage releases the viewing-screen handle.
func (m *Model) closeImage() {
	if m.image != nil {
		m.trailer += m.image.Close()
		m.image = nil
	}
}
