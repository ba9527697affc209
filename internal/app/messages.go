package app

import (
	"time"

	"github.com/tlecomte/glimpse/internal/anim"
	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/errmsg"
)

// animTickMsg drives animation playback while an image is visible.
type animTickMsg time.Time

// searchResultMsg carries the posts returned for a query.
type searchResultMsg struct {
	Query string
	Posts []booru.Post
}

// postFetchedMsg carries a post fetched by ID.
type postFetchedMsg struct {
	Post booru.Post
}

// imageLoadedMsg carries a built image handle for the viewing screen.
type imageLoadedMsg struct {
	PostID int64
	Handle anim.Handle
}

// previewLoadedMsg carries a thumbnail handle for the result list.
type previewLoadedMsg struct {
	PostID int64
	Handle anim.Handle
}

// downloadProgressMsg reports streamed download progress.
type downloadProgressMsg booru.Progress

// downloadDoneMsg reports a finished download and the written path.
type downloadDoneMsg struct {
	Path string
}

// errorMsg carries a failed operation to the error screen.
type errorMsg struct {
	Op  errmsg.Op
	Err error
}
