// Package termview prints framebuffer snapshots to a terminal or any other writer.
package termview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/display"
	"golang.org/x/term"
)

// Style selects the characters used for pixels.
type Style int

const (
	// ASCII prints one line per pixel row using '#' and '.'.
	ASCII Style = iota
	// Blocks prints two pixel rows per line using Unicode half blocks.
	Blocks
)

// Printer writes screen snapshots.
type Printer struct {
	w     io.Writer
	style Style
}

// New returns a printer for w. Half blocks are used when w is a terminal that
// is wide enough to show a full pixel row.
func New(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		style: detectStyle(w),
	}
}

// NewWithStyle returns a printer that always uses the given style.
func NewWithStyle(w io.Writer, style Style) *Printer {
	return &Printer{
		w:     w,
		style: style,
	}
}

func detectStyle(w io.Writer) Style {
	f, ok := w.(*os.File)
	if !ok {
		return ASCII
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return ASCII
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < display.Width {
		return ASCII
	}
	return Blocks
}

// Print writes the current screen content.
func (p *Printer) Print(view display.View) error {
	if _, err := io.WriteString(p.w, Render(view.Snapshot(), p.style)); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

// Render converts a snapshot to text, every line is terminated by a newline.
func Render(pixels [display.Width * display.Height]bool, style Style) string {
	var sb strings.Builder

	if style == Blocks {
		for y := 0; y < display.Height; y += 2 {
			for x := range display.Width {
				top := pixels[y*display.Width+x]
				bottom := pixels[(y+1)*display.Width+x]
				sb.WriteString(halfBlock(top, bottom))
			}
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	for y := range display.Height {
		for x := range display.Width {
			if pixels[y*display.Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	default:
		return " "
	}
}
