package intcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	tape := []int64{104, 7, 109, 3, 3, 20, 22201, 17, 18, 20, 4, 20, 99, 0, 0, 0, 0, 0, 0, 0, 0}

	// runs until starved at the input instruction
	vm := New(tape, WithPageSize(8))
	err := vm.Run(ctx)
	require.True(t, errors.Is(err, ErrStarvedInput), "expected starved input, got %v", err)

	snap := vm.Snapshot()
	last := int64(7)
	assert.Equal(t, Snapshot{
		PC:     4,
		Base:   3,
		Steps:  2,
		Last:   &last,
		Memory: []MemorySpan{{Addr: 0, Values: tape[:13]}},
	}, snap, "expected trailing zeros trimmed")

	data, err := MarshalSnapshot(snap)
	require.NoError(t, err)
	again, err := MarshalSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, data, again, "expected canonical encoding")

	restored, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap, restored)

	// resumes with input supplied
	var out Recorder
	vm = New(nil, WithSnapshot(restored), WithInputs(5), WithOutput(&out))
	require.NoError(t, vm.Run(ctx))
	assert.Equal(t, []int64{5}, out.Values)
	assert.Equal(t, uint64(6), vm.Steps())

	got, err := vm.Load(23)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	halted := vm.Snapshot()
	assert.True(t, halted.Halted)
	vm = New(nil, WithSnapshot(halted))
	assert.True(t, vm.Halted())
	require.NoError(t, vm.Run(ctx), "expected restored halted machine to stay halted")
}

func TestSnapshot_phase(t *testing.T) {
	vm := New([]int64{3, 0, 99}, WithPhase(4))
	snap := vm.Snapshot()
	require.NotNil(t, snap.Phase)
	assert.Equal(t, int64(4), *snap.Phase)

	vm = New(nil, WithSnapshot(snap))
	require.NoError(t, vm.Run(context.Background()))
	got, err := vm.Load(0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestUnmarshalSnapshot_invalid(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte{0xff, 0x00})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intcode: unmarshal snapshot")
}

func TestSnapshot_farMemory(t *testing.T) {
	const far = 1 << 40
	ctx := context.Background()
	tape := []int64{1101, 1, 1, far, 4, far, 99}

	vm := New(tape)
	require.NoError(t, vm.Run(ctx))
	last, _ := vm.LastOutput()
	assert.Equal(t, int64(2), last)

	assert.Equal(t, []MemorySpan{
		{Addr: 0, Values: tape},
		{Addr: far, Values: []int64{2}},
	}, vm.Memory(), "expected only stored memory")

	data, err := MarshalSnapshot(vm.Snapshot())
	require.NoError(t, err)
	snap, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, vm.Snapshot(), snap)

	restored := New(nil, WithSnapshot(snap))
	assert.True(t, restored.Halted())
	val, err := restored.Load(far)
	require.NoError(t, err)
	assert.Equal(t, int64(2), val)

	var out strings.Builder
	require.NoError(t, restored.Dump(&out))
	line := func(mark, label, text string) string {
		return fmt.Sprintf("%s%-14s %s\n", mark, label, text)
	}
	assert.Equal(t, strings.Join([]string{
		"# VM Dump",
		"  pc: 6",
		"  base: 0",
		"  steps: 3",
		"  last: 2",
		"  halted",
		"# Memory",
		"",
	}, "\n")+
		line("  ", "@0", "add #1, #1, [1099511627776]")+
		line("  ", "@4", "out [1099511627776]")+
		line("> ", "@6", "hlt")+
		line("  ", "@7-255", "0 ...")+
		line("  ", "@256-1099511627775", "0 ...")+
		line("  ", "@1099511627776", "mul [0], [0], [0]")+
		line("  ", "@1099511627780-1099511628031", "0 ..."), out.String())
}

func TestSnapshot_negativeSpan(t *testing.T) {
	vm := New(nil, WithSnapshot(Snapshot{Memory: []MemorySpan{{Addr: -4, Values: []int64{1}}}}))
	assert.Equal(t, AddressError{Addr: -4}, vm.Run(context.Background()))
}
