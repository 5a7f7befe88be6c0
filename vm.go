package intcode

import (
	"context"

	"github.com/jcorbin/intcode/internal/mem"
)

// VM is a stored-program machine that executes a tape of integers.
//
// All state lives in main memory plus two registers: the program counter,
// which addresses the next instruction word, and the relative base, which
// offsets relative mode parameters. Instructions are re-decoded from memory
// every time they are executed, so programs are free to modify themselves.
type VM struct {
	ioCore

	pc   int64 // program counter
	base int64 // relative base

	halted    bool
	steps     uint64
	stepLimit uint64

	last    int64
	hasLast bool

	// Main memory is a sparse paged array of int64 cells; addresses that
	// have never been stored to read as 0.
	mem mem.Cells

	snap    *Snapshot
	loadErr error
}

type opFunc func(vm *VM, ctx context.Context, in Instruction) (jumped bool)

var opTable = map[Opcode]opFunc{
	OpAdd:         (*VM).add,
	OpMul:         (*VM).mul,
	OpInput:       (*VM).input,
	OpOutput:      (*VM).output,
	OpJumpIfTrue:  (*VM).jumpIfTrue,
	OpJumpIfFalse: (*VM).jumpIfFalse,
	OpLessThan:    (*VM).lessThan,
	OpEquals:      (*VM).equals,
	OpAdjustBase:  (*VM).adjustBase,
	OpHalt:        (*VM).halt,
}

//// Arithmetic

// Opcode  Name  Parameters  Function
//
//	1    add   a b dst     dst := a + b
func (vm *VM) add(_ context.Context, in Instruction) bool {
	dst := vm.addr(in, 3)
	vm.stor(dst, vm.read(in, 1)+vm.read(in, 2))
	return false
}

// Opcode  Name  Parameters  Function
//
//	2    mul   a b dst     dst := a * b
func (vm *VM) mul(_ context.Context, in Instruction) bool {
	dst := vm.addr(in, 3)
	vm.stor(dst, vm.read(in, 1)*vm.read(in, 2))
	return false
}

//// Input/Output

// Opcode  Name  Parameters  Function
//
//	3    in    dst         dst := next input value
//
// The destination is resolved before asking for input, so that a failed
// input leaves the machine unchanged.
func (vm *VM) input(ctx context.Context, in Instruction) bool {
	dst := vm.addr(in, 1)
	vm.stor(dst, vm.nextInput(ctx))
	return false
}

// Opcode  Name  Parameters  Function
//
//	4    out   a           emit a
func (vm *VM) output(ctx context.Context, in Instruction) bool {
	vm.emit(ctx, vm.read(in, 1))
	return false
}

//// Control Flow

// Opcode  Name  Parameters  Function
//
//	5    jt    a target    if a != 0 jump to target
func (vm *VM) jumpIfTrue(_ context.Context, in Instruction) bool {
	if vm.read(in, 1) != 0 {
		vm.pc = vm.read(in, 2)
		return true
	}
	return false
}

// Opcode  Name  Parameters  Function
//
//	6    jf    a target    if a == 0 jump to target
func (vm *VM) jumpIfFalse(_ context.Context, in Instruction) bool {
	if vm.read(in, 1) == 0 {
		vm.pc = vm.read(in, 2)
		return true
	}
	return false
}

//// Comparison

// Opcode  Name  Parameters  Function
//
//	7    lt    a b dst     dst := 1 if a < b else 0
func (vm *VM) lessThan(_ context.Context, in Instruction) bool {
	dst := vm.addr(in, 3)
	vm.stor(dst, boolInt(vm.read(in, 1) < vm.read(in, 2)))
	return false
}

// Opcode  Name  Parameters  Function
//
//	8    eq    a b dst     dst := 1 if a == b else 0
func (vm *VM) equals(_ context.Context, in Instruction) bool {
	dst := vm.addr(in, 3)
	vm.stor(dst, boolInt(vm.read(in, 1) == vm.read(in, 2)))
	return false
}

//// Registers

// Opcode  Name  Parameters  Function
//
//	9    arb   a           relative base += a
func (vm *VM) adjustBase(_ context.Context, in Instruction) bool {
	vm.base += vm.read(in, 1)
	return false
}

// Opcode  Name  Parameters  Function
//
//	99   hlt               stop
//
// The program counter is left addressing the halt instruction.
func (vm *VM) halt(_ context.Context, _ Instruction) bool {
	vm.halted = true
	vm.logf("halt")
	vm.haltif(vm.flush())
	return true
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
