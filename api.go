package intcode

import (
	"context"
)

// New creates a machine whose memory holds a copy of tape, starting with
// the instruction at address 0.
func New(tape []int64, opts ...VMOption) *VM {
	vm := &VM{}
	vm.in = starved{}
	VMOptions(opts...).apply(vm)
	if vm.snap != nil {
		vm.loadErr = vm.restore(*vm.snap)
		vm.snap = nil
	} else {
		vm.loadErr = vm.mem.Stor(0, tape...)
	}
	return vm
}

// Run executes instructions until the machine halts, returning nil, or until
// a fatal error, which is returned as is. Calling Run on a halted machine
// does nothing.
//
// A machine that failed to get input may be resumed by calling Run again
// once input is available: failed INPUT instructions have no effect.
//
// The context is checked between instructions, and passed to blocking
// input channels.
func (vm *VM) Run(ctx context.Context) error {
	if vm.loadErr != nil {
		return vm.loadErr
	}
	if vm.halted {
		return nil
	}
	return vm.guard(func() { vm.exec(ctx) })
}

// Step executes a single instruction, returning true if the machine is
// halted.
func (vm *VM) Step(ctx context.Context) (halted bool, err error) {
	if vm.loadErr != nil {
		return false, vm.loadErr
	}
	if vm.halted {
		return true, nil
	}
	err = vm.guard(func() { vm.step(ctx) })
	return vm.halted, err
}

// Exec runs a new machine loaded with tape, returning its last output.
func Exec(ctx context.Context, tape []int64, opts ...VMOption) (int64, error) {
	vm := New(tape, opts...)
	if err := vm.Run(ctx); err != nil {
		return 0, err
	}
	last, ok := vm.LastOutput()
	if !ok {
		return 0, ErrNoOutput
	}
	return last, nil
}

// PC returns the program counter.
func (vm *VM) PC() int64 { return vm.pc }

// Base returns the relative base register.
func (vm *VM) Base() int64 { return vm.base }

// Halted returns true once a HALT instruction has executed.
func (vm *VM) Halted() bool { return vm.halted }

// Steps returns the number of instructions executed.
func (vm *VM) Steps() uint64 { return vm.steps }

// LastOutput returns the last value output, if any.
func (vm *VM) LastOutput() (int64, bool) { return vm.last, vm.hasLast }

// Load returns the value stored at addr.
func (vm *VM) Load(addr int64) (int64, error) {
	if addr < 0 {
		return 0, AddressError{Addr: addr}
	}
	return vm.mem.Load(uint(addr))
}

// Memory returns a copy of all non-zero memory, as spans in address order.
func (vm *VM) Memory() []MemorySpan { return memorySpans(vm.mem.Spans()) }
