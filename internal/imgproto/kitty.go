package imgproto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences.
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
)

// Kitty protocol requires chunked transmission; each chunk max 4096 bytes
// of base64 payload.
const kittyChunkSize = 4096

// Kitty implements Protocol using the Kitty graphics protocol.
// Images are transmitted to terminal memory once and placed by ID.
type Kitty struct{}

func (k *Kitty) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return transmitPNG(buf.Bytes(), id), nil
}

// transmitPNG builds the chunked transmission command for pre-encoded PNG
// data. a=t transmits without displaying, f=100 is PNG format, q=2
// suppresses terminal responses.
func transmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		moreChunks := 0
		if end < len(encoded) {
			moreChunks = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, moreChunks)
		} else {
			fmt.Fprintf(&sb, "m=%d;", moreChunks)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}

	return sb.String()
}

// Place returns the escape sequence to display a previously transmitted
// image. A fixed placement ID (p=1) makes repositioning replace the
// previous placement instead of leaving ghost images. The cursor is saved,
// moved to (row, col) and restored around the placement.
func (k *Kitty) Place(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Delete removes a transmitted image and clears all of its placements.
func (k *Kitty) Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

func (k *Kitty) Placeholder(width, height int) string {
	return blankPlaceholder(width, height)
}

// TargetPixelSize assumes the common 8x16 pixel cell geometry.
func (k *Kitty) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return widthCells * 8, heightCells * 16
}
