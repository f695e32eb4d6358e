// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses the virtual machine command line arguments, args does
// not include the program name.
func ParseFlags(name string, args []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(&strings.Builder{})
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(args)
	positional := flags.Args()
	if err != nil || len(positional) == 0 {
		return opts, &UsageError{flags: flags, usage: "[options] <program file>"}
	}

	if err := validateArgs(positional); err != nil {
		return opts, err
	}
	opts.Input = positional[0]

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line arguments, args does
// not include the program name.
func ParseDisasmFlags(name string, args []string) (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(&strings.Builder{})
	var opts options.Program
	var output options.OutputFlags
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw program without archive detection")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&output.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&output.NoOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&output.AsmFile, "a", false, "write the listing to the input file name with .asm extension if -o is not set")

	err := flags.Parse(args)
	positional := flags.Args()
	if err != nil || len(positional) == 0 {
		return opts, options.Disassembler{}, &UsageError{flags: flags, usage: "[options] <file to disassemble>"}
	}
	if err := validateArgs(positional); err != nil {
		return opts, options.Disassembler{}, err
	}
	opts.Input = positional[0]
	if output.AsmFile && opts.Output == "" {
		opts.Output = fileprocessor.GenerateOutputFilename(opts.Input)
	}

	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !output.NoHexComments
	disasmOptions.OffsetComments = !output.NoOffsets
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
	}
	if e.flags == nil {
		return
	}
	fmt.Printf("usage: %s %s\n\n", e.flags.Name(), e.usage)
	e.flags.SetOutput(nil)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions validates option values
func validateOptions(opts options.Program) error {
	if opts.CyclesPerFrame <= 0 {
		return fmt.Errorf("invalid cycles per frame %d, must be positive", opts.CyclesPerFrame)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}
	if _, err := config.ParseColor(opts.Foreground); err != nil {
		return fmt.Errorf("invalid foreground color: %w", err)
	}
	if _, err := config.ParseColor(opts.Background); err != nil {
		return fmt.Errorf("invalid background color: %w", err)
	}
	if opts.Print && !opts.Headless {
		return fmt.Errorf("option -print requires -headless")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.CyclesPerFrame, "cpf", options.DefaultCyclesPerFrame, "instructions executed per 60 Hz frame")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixels per screen pixel")
	flags.StringVar(&opts.Foreground, "fg", options.DefaultForeground, "pixel color as hex RRGGBB")
	flags.StringVar(&opts.Background, "bg", options.DefaultBackground, "background color as hex RRGGBB")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 selects a time based seed")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw program without archive detection")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window")
	flags.Uint64Var(&opts.Frames, "frames", 0, "number of frames to run in headless mode, 0 runs until an error or interrupt")
	flags.BoolVar(&opts.Print, "print", false, "print the screen to the terminal after a headless run")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace headless runs to 60 frames per second")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
