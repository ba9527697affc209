package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlecomte/glimpse/internal/anim"
	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/errmsg"
	"github.com/tlecomte/glimpse/internal/state"
	"github.com/tlecomte/glimpse/internal/ui/results"
	"github.com/tlecomte/glimpse/internal/ui/searchform"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case animTickMsg:
		return m.handleTick(time.Time(msg))

	case searchform.SearchSubmittedMsg:
		return m.handleSearchSubmitted(msg)

	case searchform.OpenIDSubmittedMsg:
		m.screen = ScreenLoading
		m.loadingText = fmt.Sprintf("Fetching post #%d...", msg.ID)
		return m, fetchPostCmd(m.client, msg.ID)

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case results.OpenPostMsg:
		return m.openPost(msg.Post)

	case results.SelectionChangedMsg:
		m.closePreview()
		if m.imagesEnabled() {
			return m, loadPreviewCmd(m.client, m.proto, msg.Post, m.previewArea())
		}
		return m, nil

	case postFetchedMsg:
		return m.openPost(msg.Post)

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	case imageLoadedMsg:
		return m.handleImageLoaded(msg)

	case downloadProgressMsg:
		m.dlGauge.SetProgress(msg.Downloaded, msg.Total)
		return m, waitProgressCmd(m.downloadCh)

	case downloadDoneMsg:
		m.downloading = false
		m.dlDonePath = msg.Path
		return m, nil

	case errorMsg:
		m.downloading = false
		m.closePreview()
		m.closeImage()
		m.errText = errmsg.Format(msg.Op, msg.Err)
		m.screen = ScreenError
		return m, nil
	}

	return m.updateActiveComponent(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.form.SetSize(msg.Width, msg.Height)
	m.results.SetSize(m.listWidth(), msg.Height)
	m.post.SetSize(msg.Width, msg.Height)

	m.refitHandles()
	return m, nil
}

// refitHandles re-encodes visible images whose cell area materially changed.
func (m *Model) refitHandles() {
	if m.preview != nil {
		if area, ok := m.preview.NeedsResize(m.previewArea()); ok {
			if err := m.preview.ResizeFit(area); err != nil {
				m.closePreview()
			}
		}
	}
	if m.image != nil {
		if area, ok := m.image.NeedsResize(m.imageArea()); ok {
			if err := m.image.ResizeFit(area); err != nil {
				m.closeImage()
			}
		}
	}
}

// imageArea returns the cell area the viewing image must fit, which
// depends on whether the full-image screen is active.
func (m Model) imageArea() anim.Area {
	if m.screen == ScreenFullImage {
		return anim.Area{Width: m.width, Height: m.height}
	}
	cols, rows := m.post.ImageArea()
	return anim.Area{Width: cols, Height: rows}
}

func (m Model) listWidth() int {
	if !m.imagesEnabled() {
		return m.width
	}
	return m.width / 2
}

// previewArea is the region right of the result list.
func (m Model) previewArea() anim.Area {
	return anim.Area{
		Width:  max(m.width-m.listWidth()-3, 1),
		Height: max(m.height-2, 1),
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenInput:
		if msg.String() == "esc" {
			return m, tea.Quit
		}

	case ScreenLoading:
		if msg.String() == "esc" {
			m.screen = ScreenInput
			return m, nil
		}
		return m, nil

	case ScreenResults:
		switch msg.String() {
		case "q", "esc":
			m.closePreview()
			m.screen = ScreenInput
			return m, nil
		}

	case ScreenViewing:
		return m.handleViewingKey(msg)

	case ScreenFullImage:
		switch msg.String() {
		case "f", "q", "esc":
			m.screen = ScreenViewing
			m.refitHandles()
			return m, nil
		}
		return m, nil

	case ScreenError:
		// Any key returns to the input screen.
		m.screen = ScreenInput
		m.errText = ""
		return m, nil
	}

	return m.updateActiveComponent(msg)
}

func (m Model) handleViewingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.downloading {
		return m, nil // modal: keys wait for the download
	}

	switch msg.String() {
	case "q", "esc":
		m.closeImage()
		m.dlDonePath = ""
		if m.results.Len() > 0 {
			m.screen = ScreenResults
		} else {
			m.screen = ScreenInput
		}
		return m, nil

	case "f":
		if m.image != nil {
			m.screen = ScreenFullImage
			m.refitHandles()
		}
		return m, nil

	case "d":
		return m.startDownload()

	case "o":
		url := fmt.Sprintf("%s/posts/%d", m.cfg.BaseURL, m.post.Post().ID)
		return m, openBrowserCmd(url)
	}

	var cmd tea.Cmd
	m.post, cmd = m.post.Update(msg)
	return m, cmd
}

func (m Model) startDownload() (tea.Model, tea.Cmd) {
	post := m.post.Post()
	m.downloading = true
	m.dlDonePath = ""
	m.dlGauge.SetProgress(0, post.File.Size)
	m.downloadCh = make(chan booru.Progress, 16)

	return m, tea.Batch(
		runDownloadCmd(m.client, post, m.cfg.DownloadDir, m.downloadCh),
		waitProgressCmd(m.downloadCh),
	)
}

func (m Model) handleSearchSubmitted(msg searchform.SearchSubmittedMsg) (tea.Model, tea.Cmd) {
	m.screen = ScreenLoading
	m.loadingText = "Searching " + msg.Query + "..."

	if m.states != nil {
		if err := m.states.AddSearch(msg.Query); err == nil {
			if recent, err := m.states.RecentSearches(50); err == nil {
				m.form.SetHistory(recent)
			}
		}
		m.states.SaveSession(state.Session{LastQuery: msg.Query, LastMode: "tags"})
	}

	return m, searchCmd(m.client, msg.Query, m.cfg.SearchLimit)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenLoading {
		return m, nil // canceled while in flight
	}

	m.results.SetPosts(msg.Query, msg.Posts)
	m.results.SetFocused(true)
	m.results.SetSize(m.listWidth(), m.height)
	m.screen = ScreenResults

	m.closePreview()
	if m.imagesEnabled() {
		if selected := m.results.Selected(); selected != nil {
			return m, loadPreviewCmd(m.client, m.proto, *selected, m.previewArea())
		}
	}
	return m, nil
}

func (m Model) openPost(post booru.Post) (tea.Model, tea.Cmd) {
	m.closeImage()
	m.post.SetPost(post, m.width, m.height)
	m.screen = ScreenViewing
	m.dlDonePath = ""

	if !m.imagesEnabled() {
		return m, nil
	}
	return m, loadImageCmd(m.client, m.proto, post, m.imageArea())
}

func (m Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	selected := m.results.Selected()
	if m.screen != ScreenResults || selected == nil || selected.ID != msg.PostID {
		// Stale load: the cursor moved on, or the screen changed.
		if msg.Handle != nil {
			m.trailer += msg.Handle.Close()
		}
		return m, nil
	}

	m.closePreview()
	m.preview = msg.Handle
	return m, m.ensureTicking()
}

func (m Model) handleImageLoaded(msg imageLoadedMsg) (tea.Model, tea.Cmd) {
	viewing := m.screen == ScreenViewing || m.screen == ScreenFullImage
	if !viewing || m.post.Post().ID != msg.PostID {
		if msg.Handle != nil {
			m.trailer += msg.Handle.Close()
		}
		return m, nil
	}

	m.closeImage()
	m.image = msg.Handle
	return m, m.ensureTicking()
}

// ensureTicking starts the animation tick loop when an image is on
// screen, unless one is already running.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || (m.preview == nil && m.image == nil) {
		return nil
	}
	m.ticking = true
	return tickCmd(m.cfg.TickInterval())
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Cleanup sequences queued before the previous paint have reached
	// the terminal by now.
	m.trailer = ""

	if m.preview == nil && m.image == nil {
		m.ticking = false // loop stops when nothing is animating
		return m, nil
	}

	// Withholding advances while the download modal is up freezes
	// playback; the single-step advance policy guarantees no catch-up
	// jump once the modal closes.
	if !m.downloading {
		if m.preview != nil && m.screen == ScreenResults {
			m.preview.TryAdvance(now)
		}
		if m.image != nil && (m.screen == ScreenViewing || m.screen == ScreenFullImage) {
			m.image.TryAdvance(now)
		}
	}

	m.ticking = true
	return m, tickCmd(m.cfg.TickInterval())
}

// updateActiveComponent routes remaining messages to the focused widget.
func (m Model) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenInput:
		m.form, cmd = m.form.Update(msg)
	case ScreenResults:
		m.results, cmd = m.results.Update(msg)
	case ScreenViewing:
		m.post, cmd = m.post.Update(msg)
	}
	return m, cmd
}
