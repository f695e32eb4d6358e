// Package options contains the program options.
package options

// Default option values.
const (
	DefaultCyclesPerFrame = 30
	DefaultScale          = 10
	DefaultForeground     = "FFFFFF"
	DefaultBackground     = "000000"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Binary   bool   `flag:"binary" usage:"treat input as raw program without archive detection"`
	Headless bool   `flag:"headless" usage:"run without a window"`
	Frames   uint64 `flag:"frames" usage:"number of frames to run in headless mode (0: until error or interrupt)"`
	Print    bool   `flag:"print" usage:"print the screen to the terminal after a headless run"`
	Realtime bool   `flag:"realtime" usage:"pace headless runs to 60 frames per second"`
	Seed     uint64 `flag:"seed" usage:"random seed (0: time based)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Display contains execution speed and rendering options.
type Display struct {
	CyclesPerFrame int    `flag:"cpf" usage:"instructions executed per 60 Hz frame" default:"30"`
	Scale          int    `flag:"scale" usage:"window pixels per screen pixel" default:"10"`
	Foreground     string `flag:"fg" usage:"pixel color as hex RRGGBB" default:"FFFFFF"`
	Background     string `flag:"bg" usage:"background color as hex RRGGBB" default:"000000"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Display
}

// OutputFlags contains disassembler output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	AsmFile       bool `flag:"a" usage:"write the listing to the input name with .asm extension"`
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool // output opcode bytes as comment
	OffsetComments bool // output the address of each line as comment
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
