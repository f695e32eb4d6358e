// Package loader handles CHIP-8 program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/user-none/eblitui/romloader"
)

// Extensions are the file extensions of CHIP-8 programs, used to find the
// program inside of archives.
var Extensions = []string{".ch8", ".c8", ".rom"}

var (
	// ErrEmptyProgram is returned for files that contain no data.
	ErrEmptyProgram = errors.New("empty program")

	// ErrProgramTooLarge is returned for programs that do not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// ROM is a loaded program.
type ROM struct {
	Name string // base name of the file the program was read from
	Data []byte
}

// Loader handles loading program files from disk.
type Loader struct {
	extensions []string
}

// New creates a new program loader.
func New() *Loader {
	return &Loader{
		extensions: Extensions,
	}
}

// Load reads the program file named by the input option. Zip, 7z, gzip, tar.gz
// and rar archives are unpacked unless binary mode is set. Files with an
// unknown extension are loaded as raw program.
func (l *Loader) Load(opts options.Program) (*ROM, error) {
	if opts.Binary {
		return l.loadRaw(opts.Input)
	}

	data, name, err := romloader.Load(opts.Input, l.extensions)
	switch {
	case errors.Is(err, romloader.ErrUnsupportedFormat):
		return l.loadRaw(opts.Input)
	case err != nil:
		return nil, fmt.Errorf("loading file %s: %w", opts.Input, err)
	}

	return l.LoadFromBytes(name, data)
}

// LoadFromBytes validates an in memory program.
func (l *Loader) LoadFromBytes(name string, data []byte) (*ROM, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProgram, name)
	}
	if len(data) > memory.MaxProgramSize {
		return nil, fmt.Errorf("%w: %s has %d bytes, maximum is %d",
			ErrProgramTooLarge, name, len(data), memory.MaxProgramSize)
	}
	return &ROM{
		Name: name,
		Data: data,
	}, nil
}

func (l *Loader) loadRaw(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return l.LoadFromBytes(filepath.Base(path), data)
}
