package imgproto

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter is incremented on every Place call so the output string is
// always unique. Without this, Bubble Tea's diff renderer would skip
// re-sending identical sixel data when only surrounding text changed,
// leaving the image partially erased.
var placeCounter uint64

// Sixel implements Protocol using the Sixel graphics protocol.
// Encodings are cached per image ID and re-emitted on every placement.
type Sixel struct {
	mu     sync.RWMutex
	images map[uint32]string // sixel-encoded data by image ID
	cellW  int               // cell width in pixels
	cellH  int               // cell height in pixels
}

// NewSixel creates a Sixel protocol instance. It queries the terminal for
// actual cell pixel dimensions via TIOCGWINSZ.
func NewSixel() *Sixel {
	cellW, cellH := getCellSize()
	return &Sixel{
		images: make(map[uint32]string),
		cellW:  cellW,
		cellH:  cellH,
	}
}

func (s *Sixel) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()

	return "", nil
}

func (s *Sixel) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()

	if !ok {
		return ""
	}

	// Save cursor, move to position, emit sixel data, restore cursor.
	// A monotonic counter is embedded in a no-op SGR sequence to keep the
	// output unique on every call (see placeCounter).
	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)

	return sb.String()
}

func (s *Sixel) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()

	return ""
}

func (s *Sixel) Placeholder(width, height int) string {
	return blankPlaceholder(width, height)
}

// TargetPixelSize uses the probed cell pixel dimensions and leaves one row
// of vertical margin to prevent terminal scroll when the image is placed
// near the bottom of the screen.
func (s *Sixel) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	if heightCells > 1 {
		heightCells--
	}
	return widthCells * s.cellW, heightCells * s.cellH
}
