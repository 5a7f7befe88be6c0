/*
Package intcode implements a small stored-program virtual machine.

A machine executes a tape of signed integers. The tape is copied into main
memory, which is effectively infinite: any address never written reads as
zero, and memory grows as higher addresses are used. Execution starts with
the instruction word at address 0.

# Instruction Words

Each instruction word encodes an opcode in its two lowest decimal digits,
and the addressing modes of up to three parameters in the next three digits,
from least to most significant. So the word 1002 is a multiply (02) whose
first parameter is in position mode (0), second in immediate mode (1), and
third in position mode (the missing leading 0).

Parameters follow the instruction word in memory, and are resolved by mode:

	Position   0  the parameter is an address to read from or write to
	Immediate  1  the parameter is itself the value; never a write target
	Relative   2  like position, but offset by the relative base register

# Instruction Set

	Opcode  Name  Parameters  Function
	   1    add   a b dst     dst := a + b
	   2    mul   a b dst     dst := a * b
	   3    in    dst         dst := next input value
	   4    out   a           emit a
	   5    jt    a target    if a != 0 jump to target
	   6    jf    a target    if a == 0 jump to target
	   7    lt    a b dst     dst := 1 if a < b else 0
	   8    eq    a b dst     dst := 1 if a == b else 0
	   9    arb   a           relative base += a
	  99    hlt               stop

Unless it jumps, every instruction advances the program counter past its
parameters. Any other opcode is a fatal OpcodeError.

# Input and Output

A machine exchanges values with its host through an Input and an Output.
Inputs range from a Constant, to a Queue of values, to a Pipe fed by another
machine running concurrently, to a Stateful channel that threads some host
owned state through every input and output. Outputs are delivered in program
order, without buffering by the machine; the last output is also retained,
since it is conventionally a program's answer.

# Composition

Chain runs a series of machines one after another, each fed by the last.
Loop runs them concurrently in a closed feedback ring, and Search tries every
permutation of phase settings through either.
*/
package intcode
