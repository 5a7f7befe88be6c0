package intcode

import (
	"errors"
	"fmt"
)

var (
	// ErrStarvedInput indicates that an INPUT instruction executed with no
	// value obtainable from the input channel. Channels may wrap it with more
	// context; test with errors.Is.
	ErrStarvedInput = errors.New("starved input")

	// ErrNoOutput is returned by Exec and friends when a machine halted
	// without producing any output.
	ErrNoOutput = errors.New("no output")

	// ErrNoSetting is returned by Search when every phase setting failed.
	ErrNoSetting = errors.New("no valid phase setting")

	errPipeClosed = errors.New("output to closed pipe")
)

// OpcodeError indicates an instruction word whose opcode is not part of the
// instruction set.
type OpcodeError struct {
	Value int64 // instruction word
	PC    int64
}

func (e OpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %v @%v", e.Value, e.PC)
}

// ModeError indicates a parameter mode digit outside of {0, 1, 2}.
type ModeError struct {
	Value int64 // instruction word
	Param int
	Digit int64
}

func (e ModeError) Error() string {
	return fmt.Sprintf("invalid mode %v for parameter %v of %v", e.Digit, e.Param, e.Value)
}

// ImmediateWriteError indicates an instruction that would write through an
// immediate mode parameter.
type ImmediateWriteError struct {
	PC    int64
	Param int
}

func (e ImmediateWriteError) Error() string {
	return fmt.Sprintf("illegal immediate write target for parameter %v @%v", e.Param, e.PC)
}

// AddressError indicates a negative effective address.
type AddressError struct {
	Addr int64
}

func (e AddressError) Error() string {
	return fmt.Sprintf("negative address %v", e.Addr)
}

// StepLimitError indicates that a machine exceeded its step limit.
type StepLimitError uint64

func (lim StepLimitError) Error() string {
	return fmt.Sprintf("step limit %v exceeded", uint64(lim))
}

// haltError carries a fatal error out of the execution loop by panic.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
