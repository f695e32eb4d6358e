package config

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
)

// Runner returns the runner configuration for the options.
func Runner(opts options.Program) runner.Config {
	cfg := runner.Config{
		CyclesPerFrame: opts.CyclesPerFrame,
		Realtime:       opts.Realtime,
	}
	if opts.Headless {
		cfg.Frames = opts.Frames
	}
	return cfg
}

// Host returns the window configuration for the options.
func Host(opts options.Program, title string) (host.Config, error) {
	foreground, err := ParseColor(opts.Foreground)
	if err != nil {
		return host.Config{}, fmt.Errorf("parsing foreground color: %w", err)
	}
	background, err := ParseColor(opts.Background)
	if err != nil {
		return host.Config{}, fmt.Errorf("parsing background color: %w", err)
	}

	return host.Config{
		Title:      title,
		Scale:      opts.Scale,
		Foreground: foreground,
		Background: background,
		KeyMap:     host.DefaultKeyMap,
	}, nil
}
