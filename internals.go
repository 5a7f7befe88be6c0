package intcode

import (
	"context"
	"errors"
	"runtime"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/panicerr"
)

type ioCore struct {
	in  Input
	out Output

	phase    int64
	hasPhase bool

	logfn func(mess string, args ...interface{})
}

func (ioc ioCore) logf(mess string, args ...interface{}) {
	if ioc.logfn != nil {
		ioc.logfn(mess, args...)
	}
}

func (ioc ioCore) flush() error {
	if ioc.out == nil {
		return nil
	}
	return flushio.Flush(ioc.out)
}

// fail stops execution with a fatal error, which guard returns to the caller.
func (vm *VM) fail(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ferr := vm.flush(); err == nil {
			err = ferr
		}
	}()
	vm.logf("halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.fail(err)
	}
}

// guard runs f, converting any fail into an error return. A runtime.Goexit
// within f, such as t.FailNow from an io callback, exits the caller too.
func (vm *VM) guard(f func()) error {
	err := panicerr.Recover("VM", func() error {
		f()
		return nil
	})
	if panicerr.IsExit(err) {
		runtime.Goexit()
	}
	var halted haltError
	if errors.As(err, &halted) {
		return halted.error
	}
	return err
}

func (vm *VM) exec(ctx context.Context) {
	for !vm.halted {
		vm.haltif(ctx.Err())
		vm.step(ctx)
	}
}

func (vm *VM) step(ctx context.Context) {
	if lim := vm.stepLimit; lim != 0 && vm.steps >= lim {
		vm.fail(StepLimitError(lim))
	}

	at := vm.pc
	raw := vm.load(at)
	in, err := Decode(raw)
	vm.haltif(err)
	op, valid := opTable[in.Op]
	if !valid {
		vm.fail(OpcodeError{Value: raw, PC: at})
	}
	if p := in.Op.Writes(); p > 0 && in.Modes[p-1] == Immediate {
		vm.fail(ImmediateWriteError{PC: at, Param: p})
	}

	if vm.logfn != nil {
		vm.logf("exec @%v %v -- base:%v", at, vm.format(at, in), vm.base)
	}
	if !op(vm, ctx, in) {
		vm.pc = at + in.Op.Width()
	}
	vm.steps++
}

func (vm *VM) load(addr int64) int64 {
	if addr < 0 {
		vm.fail(AddressError{Addr: addr})
	}
	val, err := vm.mem.Load(uint(addr))
	vm.haltif(err)
	return val
}

func (vm *VM) stor(addr int64, val int64) {
	if addr < 0 {
		vm.fail(AddressError{Addr: addr})
	}
	vm.haltif(vm.mem.Stor(uint(addr), val))
}

// read resolves the value of the 1-based parameter p of the instruction at pc.
func (vm *VM) read(in Instruction, p int) int64 {
	arg := vm.load(vm.pc + int64(p))
	switch in.Modes[p-1] {
	case Immediate:
		return arg
	case Relative:
		return vm.load(vm.base + arg)
	default:
		return vm.load(arg)
	}
}

// addr resolves the address written by the 1-based parameter p of the
// instruction at pc.
func (vm *VM) addr(in Instruction, p int) int64 {
	arg := vm.load(vm.pc + int64(p))
	switch in.Modes[p-1] {
	case Immediate:
		vm.fail(ImmediateWriteError{PC: vm.pc, Param: p})
	case Relative:
		arg += vm.base
	}
	if arg < 0 {
		vm.fail(AddressError{Addr: arg})
	}
	return arg
}

func (vm *VM) nextInput(ctx context.Context) int64 {
	vm.haltif(vm.flush())
	if vm.hasPhase {
		vm.hasPhase = false
		vm.logf("input phase %v", vm.phase)
		return vm.phase
	}
	val, err := vm.in.Input(ctx)
	vm.haltif(err)
	vm.logf("input %v", val)
	return val
}

func (vm *VM) emit(ctx context.Context, val int64) {
	vm.last, vm.hasLast = val, true
	vm.logf("output %v", val)
	if vm.out != nil {
		vm.haltif(vm.out.Output(ctx, val))
	}
}
