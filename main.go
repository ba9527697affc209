package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlecomte/glimpse/internal/app"
	"github.com/tlecomte/glimpse/internal/booru"
	"github.com/tlecomte/glimpse/internal/config"
	"github.com/tlecomte/glimpse/internal/errmsg"
	"github.com/tlecomte/glimpse/internal/imgproto"
	"github.com/tlecomte/glimpse/internal/state"
)

// selectProtocol honors the config override before falling back to
// terminal detection.
func selectProtocol(cfg *config.Config) imgproto.Protocol {
	switch cfg.ImageProtocol {
	case "kitty":
		return &imgproto.Kitty{}
	case "sixel":
		return imgproto.NewSixel()
	case "none":
		return nil
	default:
		return imgproto.Detect()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	states, err := state.Open()
	if err != nil {
		fmt.Println(errmsg.Format(errmsg.OpStateLoad, err))
		os.Exit(1)
	}
	defer func() {
		if err := states.Close(); err != nil {
			fmt.Println(errmsg.Format(errmsg.OpStateSave, err))
		}
	}()

	client := booru.New(cfg.BaseURL, cfg.UserAgent)

	m := app.New(cfg, client, states, selectProtocol(cfg))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
