package imgproto

import (
	"os"
	"strings"
)

// Detect returns the best available Protocol for the current terminal,
// or nil if no image protocol is supported.
//
// The GLIMPSE_IMAGE_PROTOCOL environment variable can override detection:
//   - "kitty": force Kitty protocol
//   - "sixel": force Sixel protocol
//   - "none": disable image display
func Detect() Protocol {
	if override := os.Getenv("GLIMPSE_IMAGE_PROTOCOL"); override != "" {
		switch override {
		case "kitty":
			return &Kitty{}
		case "sixel":
			return NewSixel()
		case "none":
			return nil
		}
	}

	if IsKittySupported() {
		return &Kitty{}
	}

	if IsSixelSupported() {
		return NewSixel()
	}

	return nil
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol.
	// Check early because parent terminal env vars (e.g. GHOSTTY_RESOURCES_DIR)
	// can leak into Contour when launched from a Kitty-capable terminal.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); version != "" {
		// KONSOLE_VERSION is like "220401" for 22.04.01.
		// Kitty graphics supported from 22.04+.
		if len(version) >= 4 && version[:4] >= "2204" {
			return true
		}
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// foot (Wayland terminal)
	if term == "foot" || term == "foot-extra" {
		return true
	}

	if termProgram == "vscode" {
		return true
	}

	// mintty (Windows terminal)
	if termProgram == "mintty" {
		return true
	}

	if termProgram == "iTerm.app" {
		return true
	}

	// Contour terminal
	if termProgram == "contour" || os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}

	// xterm supports sixel when built with --enable-sixel-graphics.
	// We can't easily detect this, but TERM=xterm is a reasonable hint
	// when no other protocol matched above. IsKittySupported() is checked
	// first, so xterm-kitty won't reach here.
	if term == "xterm" || strings.HasPrefix(term, "xterm-") {
		return true
	}

	return false
}
