// Package imgproto abstracts terminal graphics protocols (Kitty and Sixel)
// for displaying post images inside the TUI.
package imgproto

import "image"

// Protocol abstracts the terminal image display protocol.
// An instance is detected once at startup and injected into every
// component that prepares or places images.
type Protocol interface {
	// Prepare encodes the image and returns any one-time terminal command.
	// Kitty: transmits to terminal memory, returns escape sequences.
	// Sixel: encodes and caches internally, returns empty string.
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the escape sequence to display the image at (row, col),
	// 1-based terminal coordinates. width and height are in cells.
	// Kitty: references by ID (lightweight).
	// Sixel: emits full image data with cursor positioning.
	Place(id uint32, row, col, width, height int) string

	// Delete returns the escape sequence to remove the image.
	// Sixel: drops the cached encoding, returns "".
	Delete(id uint32) string

	// Placeholder returns blank space for lipgloss layout measurement.
	Placeholder(width, height int) string

	// TargetPixelSize returns the pixel dimensions to use when resizing an
	// image that will be displayed in the given number of terminal cells.
	TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int)
}

// blankPlaceholder returns a width x height block of spaces so layout code
// can measure the image area without seeing escape sequences.
func blankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}

	out := make([]byte, 0, (width+1)*height)
	for i := 0; i < height; i++ {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}
	return string(out)
}
