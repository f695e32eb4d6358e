// Package config handles application configuration and setup
package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ParseColor parses an opaque color in RRGGBB notation, an optional leading
// '#' is ignored.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color '%s' is not in RRGGBB format", s)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("decoding color '%s': %w", s, err)
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}, nil
}

// NewRandom returns a random source for the interpreter. A zero seed selects
// a time based seed.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
