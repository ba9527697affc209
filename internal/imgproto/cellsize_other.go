//go:build !unix

package imgproto

// getCellSize returns default terminal cell dimensions on platforms
// without TIOCGWINSZ.
func getCellSize() (cellW, cellH int) {
	return 8, 16
}
