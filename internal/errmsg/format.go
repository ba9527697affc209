// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// API operations
	OpSearchPosts Op = "search posts"
	OpFetchPost   Op = "fetch post"

	// Image operations
	OpImageFetch Op = "download image"
	OpImageLoad  Op = "load image"

	// Download operations
	OpDownloadPost Op = "download post"

	// Browser
	OpOpenBrowser Op = "open browser"

	// Session state
	OpStateLoad Op = "load session state"
	OpStateSave Op = "save session state"
)

// Format produces a user-facing error message for a failed operation.
// Returns an empty string for a nil error.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}
