// Package runner drives an interpreter in 60 Hz frames: a configurable number
// of cycles followed by a single timer tick per frame.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second, equal to the timer frequency.
const FrameRate = 60

// FrameDuration is the wall clock duration of a single frame.
const FrameDuration = time.Second / FrameRate

// maxCatchUpFrames limits the frames run for a single Advance call, a host
// that was suspended for a long time must not stall on catching up.
const maxCatchUpFrames = 10

// ErrHalted is returned when stepping a runner that stopped on an error.
var ErrHalted = errors.New("machine halted")

// KeySource returns the current keypad state.
type KeySource func() cpu.Keys

// Config controls the execution speed.
type Config struct {
	CyclesPerFrame int    // instructions executed per frame
	Frames         uint64 // frames to run by Run, 0 runs until an error or cancellation
	Realtime       bool   // pace Run to the wall clock
}

// Runner executes frames on an interpreter and tracks the previous keypad
// state that the interpreter needs for key release detection.
type Runner struct {
	vm     *cpu.Interpreter
	logger *log.Logger
	config Config

	previous    cpu.Keys
	frames      uint64
	accumulator time.Duration
	err         error
}

// New returns a runner for the given interpreter.
func New(vm *cpu.Interpreter, logger *log.Logger, config Config) (*Runner, error) {
	if config.CyclesPerFrame <= 0 {
		return nil, fmt.Errorf("invalid cycles per frame %d", config.CyclesPerFrame)
	}
	return &Runner{
		vm:     vm,
		logger: logger,
		config: config,
	}, nil
}

// Step runs one frame with the given keypad state. The first cycle of the
// frame sees the keypad state of the previous frame as previous state, all
// following cycles see the current one, so that a key release is reported
// only once.
// After the first error the runner halts and every further call returns it.
func (r *Runner) Step(keys cpu.Keys) error {
	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, r.err)
	}

	previous := r.previous
	for range r.config.CyclesPerFrame {
		if err := r.vm.Cycle(keys, previous); err != nil {
			r.err = err
			r.logger.Debug("Execution stopped",
				log.Hex("pc", r.vm.PC()),
				log.Int("frame", int(r.frames)),
				log.Err(err))
			return err
		}
		previous = keys
	}

	r.vm.UpdateTimers()
	r.previous = keys
	r.frames++
	return nil
}

// Advance adds the elapsed wall clock time and runs all frames that are due.
// It returns the number of frames run.
func (r *Runner) Advance(elapsed time.Duration, keys cpu.Keys) (int, error) {
	r.accumulator += elapsed
	if limit := maxCatchUpFrames * FrameDuration; r.accumulator > limit {
		r.accumulator = limit
	}

	frames := 0
	for r.accumulator >= FrameDuration {
		if err := r.Step(keys); err != nil {
			return frames, err
		}
		r.accumulator -= FrameDuration
		frames++
	}
	return frames, nil
}

// Run executes frames until the configured frame count is reached, the
// machine halts or the context is canceled. input is polled once per frame
// and may be nil for a machine without input.
func (r *Runner) Run(ctx context.Context, input KeySource) error {
	if input == nil {
		input = func() cpu.Keys { return cpu.Keys{} }
	}

	r.logger.Debug("Starting execution",
		log.Int("cycles_per_frame", r.config.CyclesPerFrame),
		log.Int("frames", int(r.config.Frames)),
		log.String("realtime", fmt.Sprint(r.config.Realtime)))

	if r.config.Realtime {
		return r.runRealtime(ctx, input)
	}

	for r.config.Frames == 0 || r.frames < r.config.Frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", r.frames, err)
		}
		if err := r.Step(input()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runRealtime(ctx context.Context, input KeySource) error {
	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	last := time.Now()
	for r.config.Frames == 0 || r.frames < r.config.Frames {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running frame %d: %w", r.frames, ctx.Err())
		case now := <-ticker.C:
			if _, err := r.Advance(now.Sub(last), input()); err != nil {
				return err
			}
			last = now
		}
	}
	return nil
}

// Reset restarts the program and clears the halted state.
func (r *Runner) Reset() {
	r.vm.Reset()
	r.previous = cpu.Keys{}
	r.frames = 0
	r.accumulator = 0
	r.err = nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Err returns the error that halted the runner, if any.
func (r *Runner) Err() error {
	return r.err
}

// Interpreter returns the driven interpreter.
func (r *Runner) Interpreter() *cpu.Interpreter {
	return r.vm
}
