package app

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlecomte/glimpse/internal/anim"
	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/errmsg"
	"github.com/tlecomte/glimpse/internal/imgproto"
)

// tickCmd schedules the next animation tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// searchCmd runs a tag search against the board.
func searchCmd(client *booru.Client, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		posts, err := client.SearchPosts(context.Background(), query, limit)
		if err != nil {
			return errorMsg{Op: errmsg.OpSearchPosts, Err: err}
		}
		return searchResultMsg{Query: query, Posts: posts}
	}
}

// fetchPostCmd fetches a single post by ID.
func fetchPostCmd(client *booru.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		post, err := client.GetPost(context.Background(), id)
		if err != nil {
			return errorMsg{Op: errmsg.OpFetchPost, Err: err}
		}
		return postFetchedMsg{Post: *post}
	}
}

// displayURL picks the variant to decode for the viewing screen.
// Animated containers must use the original file: the board's downscaled
// samples are stills.
func displayURL(post booru.Post) string {
	switch post.File.Ext {
	case "gif", "png", "apng", "webp":
		return post.FileURL()
	default:
		return post.DisplayURL()
	}
}

// loadImageCmd fetches and decodes the post's image into a handle sized
// for the given cell area.
func loadImageCmd(client *booru.Client, proto imgproto.Protocol, post booru.Post, area anim.Area) tea.Cmd {
	url := displayURL(post)
	return func() tea.Msg {
		if url == "" {
			return imageLoadedMsg{PostID: post.ID, Handle: nil}
		}
		data, err := client.FetchBytes(context.Background(), url)
		if err != nil {
			return errorMsg{Op: errmsg.OpImageFetch, Err: err}
		}
		handle, err := anim.Load(data, proto, area)
		if err != nil {
			return errorMsg{Op: errmsg.OpImageLoad, Err: err}
		}
		return imageLoadedMsg{PostID: post.ID, Handle: handle}
	}
}

// loadPreviewCmd fetches the thumbnail for the result list. Preview
// failures are swallowed: the list works fine without images.
func loadPreviewCmd(client *booru.Client, proto imgproto.Protocol, post booru.Post, area anim.Area) tea.Cmd {
	url := post.PreviewURL()
	return func() tea.Msg {
		if url == "" {
			return nil
		}
		data, err := client.FetchBytes(context.Background(), url)
		if err != nil {
			return nil
		}
		handle, err := anim.Load(data, proto, area)
		if err != nil {
			return nil
		}
		return previewLoadedMsg{PostID: post.ID, Handle: handle}
	}
}

// runDownloadCmd streams the post's file to disk, feeding progress into ch.
func runDownloadCmd(client *booru.Client, post booru.Post, dir string, ch chan<- booru.Progress) tea.Cmd {
	return func() tea.Msg {
		defer close(ch)
		path, err := client.DownloadPost(context.Background(), &post, dir, func(p booru.Progress) {
			select {
			case ch <- p:
			default: // drop updates rather than stall the download
			}
		})
		if err != nil {
			return errorMsg{Op: errmsg.OpDownloadPost, Err: err}
		}
		return downloadDoneMsg{Path: path}
	}
}

// waitProgressCmd relays the next progress update from the download.
func waitProgressCmd(ch <-chan booru.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return downloadProgressMsg(p)
	}
}

// openBrowserCmd opens the post's page in the system browser.
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return errorMsg{Op: errmsg.OpOpenBrowser, Err: err}
		}
		return nil
	}
}
