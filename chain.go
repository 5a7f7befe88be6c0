package intcode

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ChainFunc runs a composition of machines, one per phase setting, feeding
// seed into the first machine and returning the final output.
type ChainFunc func(ctx context.Context, tape []int64, phases []int64, seed int64, opts ...VMOption) (int64, error)

// Chain runs one machine per phase setting in sequence, each to completion.
// Every machine first inputs its phase setting, then the previous machine's
// last output (seed for the first machine) for any further input.
func Chain(ctx context.Context, tape []int64, phases []int64, seed int64, opts ...VMOption) (int64, error) {
	signal := seed
	for i, phase := range phases {
		last, err := Exec(ctx, tape,
			VMOptions(opts...),
			WithInput(Phased(phase, Constant(signal))))
		if err != nil {
			return 0, fmt.Errorf("chain stage %v (phase %v): %w", i, phase, err)
		}
		signal = last
	}
	return signal, nil
}

// Loop runs one machine per phase setting concurrently, connected in a ring:
// each machine's output feeds the next machine's input, and the last
// machine's output feeds back into the first. Each machine first inputs its
// phase setting; the first machine then inputs seed.
//
// When a machine halts, the pipe to its successor is closed, so a successor
// that still wants input fails with ErrStarvedInput rather than waiting
// forever. The first error from any machine cancels all others and is
// returned. Otherwise the result is the last output of the last machine.
func Loop(ctx context.Context, tape []int64, phases []int64, seed int64, opts ...VMOption) (int64, error) {
	n := len(phases)
	if n == 0 {
		return seed, nil
	}

	pipes := make([]*Pipe, n)
	for i := range pipes {
		pipes[i] = NewPipe()
	}
	if err := pipes[0].Push(seed); err != nil {
		return 0, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	vms := make([]*VM, n)
	for i, phase := range phases {
		i, phase := i, phase
		down := pipes[(i+1)%n]
		vm := New(tape,
			VMOptions(opts...),
			WithPhase(phase),
			WithInput(pipes[i]),
			WithOutput(down))
		vms[i] = vm
		eg.Go(func() error {
			defer down.Close()
			if err := vm.Run(ctx); err != nil {
				return fmt.Errorf("loop stage %v (phase %v): %w", i, phase, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	last, ok := vms[n-1].LastOutput()
	if !ok {
		return 0, ErrNoOutput
	}
	return last, nil
}

// SearchPolicy decides what Search does when a phase setting fails.
type SearchPolicy int

const (
	// PropagateErrors stops the search at the first failing setting.
	PropagateErrors SearchPolicy = iota

	// SkipErrors treats a failing setting as invalid and moves on.
	SkipErrors
)

// Search runs every permutation of phases through run, returning the highest
// output along with the setting that produced it.
func Search(
	ctx context.Context,
	run ChainFunc,
	tape []int64, phases []int64, seed int64,
	policy SearchPolicy,
	opts ...VMOption,
) (best int64, setting []int64, err error) {
	found := false
	err = permute(phases, func(perm []int64) error {
		out, err := run(ctx, tape, perm, seed, opts...)
		if err != nil {
			if policy == SkipErrors && ctx.Err() == nil {
				return nil
			}
			return fmt.Errorf("phase setting %v: %w", perm, err)
		}
		if !found || out > best {
			found = true
			best = out
			setting = append(setting[:0], perm...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return 0, nil, ErrNoSetting
	}
	return best, setting, nil
}

// permute calls each with every permutation of values, generated by Heap's
// algorithm; each is given the same slice, which it must not retain.
func permute(values []int64, each func(perm []int64) error) error {
	perm := append([]int64(nil), values...)
	if err := each(perm); err != nil {
		return err
	}
	c := make([]int, len(perm))
	for i := 1; i < len(perm); {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			if err := each(perm); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
