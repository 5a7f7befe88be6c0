package intcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		raw     int64
		want    Instruction
		wantStr string
		wantErr error
	}{
		{raw: 1, want: Instruction{Op: OpAdd}, wantStr: "add pos pos pos"},
		{raw: 1002, want: Instruction{Op: OpMul, Modes: [3]Mode{Position, Immediate, Position}}, wantStr: "mul pos imm pos"},
		{raw: 21101, want: Instruction{Op: OpAdd, Modes: [3]Mode{Immediate, Immediate, Relative}}, wantStr: "add imm imm rel"},
		{raw: 203, want: Instruction{Op: OpInput, Modes: [3]Mode{Relative}}, wantStr: "in rel"},
		{raw: 109, want: Instruction{Op: OpAdjustBase, Modes: [3]Mode{Immediate}}, wantStr: "arb imm"},
		{raw: 1105, want: Instruction{Op: OpJumpIfTrue, Modes: [3]Mode{Immediate, Immediate}}, wantStr: "jt imm imm"},
		{raw: 99, want: Instruction{Op: OpHalt}, wantStr: "hlt"},
		{raw: 99099, want: Instruction{Op: OpHalt}, wantStr: "hlt"},
		{raw: 42, want: Instruction{Op: 42}, wantStr: "op42"},
		{raw: 0, want: Instruction{Op: 0}, wantStr: "op0"},
		{raw: -1, want: Instruction{Op: -1}, wantStr: "op-1"},

		{raw: 301, wantErr: ModeError{Value: 301, Param: 1, Digit: 3}},
		{raw: 9001, wantErr: ModeError{Value: 9001, Param: 2, Digit: 9}},
		{raw: 40002, wantErr: ModeError{Value: 40002, Param: 3, Digit: 4}},
		{raw: 100001, wantErr: ModeError{Value: 100001, Param: 4, Digit: 1}},
		{raw: 5000000007, wantErr: ModeError{Value: 5000000007, Param: 8, Digit: 5}},
	} {
		t.Run(strconv.FormatInt(tc.raw, 10), func(t *testing.T) {
			in, err := Decode(tc.raw)
			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, in)
			assert.Equal(t, tc.wantStr, in.String())
		})
	}
}

func TestDecode_idempotent(t *testing.T) {
	for raw := int64(-10); raw < 30000; raw += 7 {
		a, aerr := Decode(raw)
		b, berr := Decode(raw)
		require.Equal(t, aerr, berr, "expected same error decoding %v", raw)
		require.Equal(t, a, b, "expected same instruction decoding %v", raw)
	}
}

func TestOpcode(t *testing.T) {
	for _, tc := range []struct {
		op     Opcode
		name   string
		width  int64
		writes int
	}{
		{OpAdd, "add", 4, 3},
		{OpMul, "mul", 4, 3},
		{OpInput, "in", 2, 1},
		{OpOutput, "out", 2, 0},
		{OpJumpIfTrue, "jt", 3, 0},
		{OpJumpIfFalse, "jf", 3, 0},
		{OpLessThan, "lt", 4, 3},
		{OpEquals, "eq", 4, 3},
		{OpAdjustBase, "arb", 2, 0},
		{OpHalt, "hlt", 1, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.op.Valid())
			assert.Equal(t, tc.name, tc.op.String())
			assert.Equal(t, tc.width, tc.op.Width())
			assert.Equal(t, tc.writes, tc.op.Writes())
		})
	}
	assert.False(t, Opcode(10).Valid())
	assert.False(t, Opcode(98).Valid())
}
