package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/user-none/eblitui/romloader"
)

var testProgram = []byte{0x00, 0xE0, 0x12, 0x00}

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("load raw file", func(t *testing.T) {
		path := createTempFile(t, "pong.ch8", testProgram)

		rom, err := New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.NoError(t, err)
		assert.Equal(t, "pong.ch8", rom.Name)
		assert.Equal(t, testProgram, rom.Data)
	})

	t.Run("load file with unknown extension", func(t *testing.T) {
		path := createTempFile(t, "program.bin", testProgram)

		rom, err := New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.NoError(t, err)
		assert.Equal(t, testProgram, rom.Data)
	})

	t.Run("load binary mode", func(t *testing.T) {
		// zip magic bytes are not interpreted in binary mode
		data := []byte{0x50, 0x4B, 0x03, 0x04}
		path := createTempFile(t, "program.zip", data)

		rom, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: path},
			Flags:      options.Flags{Binary: true},
		})
		assert.NoError(t, err)
		assert.Equal(t, data, rom.Data)
	})

	t.Run("load zip archive", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("readme.txt")
		assert.NoError(t, err)
		_, err = f.Write([]byte("not a program"))
		assert.NoError(t, err)
		f, err = w.Create("games/pong.ch8")
		assert.NoError(t, err)
		_, err = f.Write(testProgram)
		assert.NoError(t, err)
		assert.NoError(t, w.Close())

		path := createTempFile(t, "games.zip", buf.Bytes())
		rom, err := New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.NoError(t, err)
		assert.Equal(t, "pong.ch8", rom.Name)
		assert.Equal(t, testProgram, rom.Data)
	})

	t.Run("zip archive without program", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("readme.txt")
		assert.NoError(t, err)
		_, err = f.Write([]byte("not a program"))
		assert.NoError(t, err)
		assert.NoError(t, w.Close())

		path := createTempFile(t, "empty.zip", buf.Bytes())
		_, err = New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.True(t, errors.Is(err, romloader.ErrNoFile))
	})

	t.Run("load gzip file", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(testProgram)
		assert.NoError(t, err)
		assert.NoError(t, w.Close())

		path := createTempFile(t, "pong.ch8.gz", buf.Bytes())
		rom, err := New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.NoError(t, err)
		assert.Equal(t, "pong.ch8", rom.Name)
		assert.Equal(t, testProgram, rom.Data)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load(options.Program{Parameters: options.Parameters{Input: "/nonexistent/file.ch8"}})
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		path := createTempFile(t, "empty.ch8", nil)
		_, err := New().Load(options.Program{Parameters: options.Parameters{Input: path}})
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})
}

func TestLoadFromBytes(t *testing.T) {
	l := New()

	rom, err := l.LoadFromBytes("max.ch8", make([]byte, memory.MaxProgramSize))
	assert.NoError(t, err)
	assert.Len(t, rom.Data, memory.MaxProgramSize)

	_, err = l.LoadFromBytes("large.ch8", make([]byte, memory.MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.ErrorContains(t, err, "large.ch8")
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}
