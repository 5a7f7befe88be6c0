package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/intcode/internal/mem"
)

// Dump writes a description of the machine's registers, followed by a
// disassembly of its memory, to w.
func (vm *VM) Dump(w io.Writer) error {
	dump := vmDumper{vm: vm, out: w}
	return dump.dump()
}

type vmDumper struct {
	vm  *VM
	out io.Writer

	span      mem.Span
	addrWidth int
	err       error
}

func (dump *vmDumper) printf(format string, args ...interface{}) {
	if dump.err == nil {
		_, dump.err = fmt.Fprintf(dump.out, format, args...)
	}
}

func (dump *vmDumper) dump() error {
	vm := dump.vm
	dump.printf("# VM Dump\n")
	dump.printf("  pc: %v\n", vm.pc)
	dump.printf("  base: %v\n", vm.base)
	dump.printf("  steps: %v\n", vm.steps)
	if last, ok := vm.LastOutput(); ok {
		dump.printf("  last: %v\n", last)
	}
	if vm.halted {
		dump.printf("  halted\n")
	}
	dump.dumpMem()
	return dump.err
}

// dumpMem walks only allocated memory, so that a program using far flung
// addresses dumps in proportion to what it has stored.
func (dump *vmDumper) dumpMem() {
	spans := dump.vm.mem.Spans()
	if dump.addrWidth == 0 {
		var end uint
		if i := len(spans) - 1; i >= 0 {
			end = spans[i].End()
		}
		dump.addrWidth = len(strconv.FormatUint(uint64(end), 10)) + 1
	}
	dump.printf("# Memory\n")
	var at uint
	for _, span := range spans {
		if at < span.Base {
			dump.dumpGap(at, span.Base)
		}
		dump.span = span
		for i := 0; i < len(span.Values); {
			i = dump.dumpAt(i)
		}
		at = span.End()
	}
}

func (dump *vmDumper) mark(from, to int64) string {
	if pc := dump.vm.pc; from <= pc && pc < to {
		return "> "
	}
	return "  "
}

func (dump *vmDumper) label(from, to int64) string {
	if to-from > 1 {
		return fmt.Sprintf("@%d-%d", from, to-1)
	}
	return "@" + strconv.FormatInt(from, 10)
}

// dumpGap elides never stored memory in [from, to).
func (dump *vmDumper) dumpGap(from, to uint) {
	start, end := int64(from), int64(to)
	text := "0"
	if end-start > 1 {
		text = "0 ..."
	}
	dump.printf("%s%-*s %s\n", dump.mark(start, end), dump.addrWidth, dump.label(start, end), text)
}

// dumpAt prints the cell(s) at index i of the current span, returning the
// index to continue from.
func (dump *vmDumper) dumpAt(i int) int {
	values := dump.span.Values
	addr := int64(dump.span.Base) + int64(i)
	pc := dump.vm.pc
	val := values[i]

	// decodable instructions that do not straddle the program counter
	if in, err := Decode(val); err == nil && in.Op.Valid() {
		width := int(in.Op.Width())
		end := addr + int64(width)
		if i+width <= len(values) && (pc <= addr || pc >= end) {
			dump.printf("%s%-*s %s\n", dump.mark(addr, addr+1), dump.addrWidth, dump.label(addr, addr+1), dump.vm.format(addr, in))
			return i + width
		}
	}

	// runs of zero
	if val == 0 {
		j := i + 1
		for j < len(values) && values[j] == 0 && int64(dump.span.Base)+int64(j) != pc {
			j++
		}
		if j-i > 1 {
			end := int64(dump.span.Base) + int64(j)
			dump.printf("%s%-*s 0 ...\n", dump.mark(addr, addr+1), dump.addrWidth, dump.label(addr, end))
			return j
		}
	}

	dump.printf("%s%-*s %v\n", dump.mark(addr, addr+1), dump.addrWidth, dump.label(addr, addr+1), val)
	return i + 1
}

// format disassembles the instruction in decoded from address at.
func (vm *VM) format(at int64, in Instruction) string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	for p := 1; p <= in.Op.Params(); p++ {
		if p > 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		arg, _ := vm.mem.Load(uint(at) + uint(p))
		switch in.Modes[p-1] {
		case Immediate:
			fmt.Fprintf(&sb, "#%d", arg)
		case Relative:
			fmt.Fprintf(&sb, "[rb%+d]", arg)
		default:
			fmt.Fprintf(&sb, "[%d]", arg)
		}
	}
	return sb.String()
}
