package disasm

import (
	"fmt"
	"io"
	"strings"
)

// write outputs the listing in assembler syntax.
func (dis *Disasm) write(w io.Writer) error {
	header := fmt.Sprintf("; CHIP-8 program disassembly\n; CRC32: %08X\n\n.org $200\n\n", dis.Checksum())
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, line := range dis.lines {
		if line.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label %s: %w", line.Label, err)
			}
		}

		if err := writeLine(w, line); err != nil {
			return fmt.Errorf("writing address $%04X: %w", line.Address, err)
		}
	}
	return nil
}

func writeLine(w io.Writer, line *Line) error {
	code := "    " + line.Code
	if line.Code == "" {
		code = "    " + dataDirective(line.Data)
	}

	var err error
	if line.Comment == "" {
		_, err = fmt.Fprintf(w, "%s\n", code)
	} else {
		_, err = fmt.Fprintf(w, "%-32s ; %s\n", code, line.Comment)
	}
	return err
}

// dataDirective returns a word directive for full words and a byte
// directive for a trailing odd byte.
func dataDirective(data []byte) string {
	if len(data) == 2 {
		return fmt.Sprintf(".word $%02X%02X", data[0], data[1])
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf(".byte $%02X", data[0]))
	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}
	return buf.String()
}
