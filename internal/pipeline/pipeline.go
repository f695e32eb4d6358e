// Package pipeline orchestrates loading and running a program.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/termview"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete execution workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
	output io.Writer // destination of printed screens
}

// New creates a new execution pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
		output: os.Stdout,
	}
}

// Execute loads the program of the options and runs it in a window or
// headless until it ends.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	rom, err := p.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	r, err := p.createRunner(rom, opts)
	if err != nil {
		return err
	}

	p.printInfo(opts, rom)

	if opts.Headless {
		return p.runHeadless(ctx, r, opts)
	}
	return p.runWindow(ctx, r, rom, opts)
}

// createRunner creates the interpreter for the program and the runner driving it.
func (p *Pipeline) createRunner(rom *loader.ROM, opts options.Program) (*runner.Runner, error) {
	cpuOptions := []cpu.Option{
		cpu.WithRandom(config.NewRandom(opts.Seed)),
	}
	if opts.Debug {
		cpuOptions = append(cpuOptions, cpu.WithLogger(p.logger))
	}

	vm, err := cpu.New(rom.Data, cpuOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}

	r, err := runner.New(vm, p.logger, config.Runner(opts))
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}
	return r, nil
}

// runHeadless runs the frames and optionally prints the final screen, also
// when the program failed.
func (p *Pipeline) runHeadless(ctx context.Context, r *runner.Runner, opts options.Program) error {
	err := r.Run(ctx, nil)
	if errors.Is(err, context.Canceled) {
		p.logger.Info("Execution interrupted")
		err = nil
	}

	vm := r.Interpreter()
	if !opts.Quiet {
		p.logger.Info("Execution finished",
			log.Int("frames", int(r.Frames())),
			log.Int("cycles", int(vm.Cycles())),
			log.Hex("pc", vm.PC()))
	}

	if opts.Print {
		if printErr := termview.New(p.output).Print(vm.Screen()); printErr != nil {
			return errors.Join(err, printErr)
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func (p *Pipeline) runWindow(ctx context.Context, r *runner.Runner, rom *loader.ROM, opts options.Program) error {
	hostConfig, err := config.Host(opts, rom.Name)
	if err != nil {
		return fmt.Errorf("creating window configuration: %w", err)
	}

	game, err := host.New(r, p.logger, hostConfig)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	if err := host.Run(ctx, game); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, rom *loader.ROM) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", rom.Name),
		log.Int("size", len(rom.Data)),
		log.Int("cycles_per_frame", opts.CyclesPerFrame),
	)
}
