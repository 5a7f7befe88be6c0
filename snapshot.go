package intcode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/jcorbin/intcode/internal/mem"
)

// Snapshot captures the complete state of a machine, so that it may be
// persisted and later resumed by WithSnapshot.
type Snapshot struct {
	PC     int64        `cbor:"pc"`
	Base   int64        `cbor:"base"`
	Halted bool         `cbor:"halted,omitempty"`
	Steps  uint64       `cbor:"steps,omitempty"`
	Last   *int64       `cbor:"last,omitempty"`
	Phase  *int64       `cbor:"phase,omitempty"`
	Memory []MemorySpan `cbor:"mem"`
}

// MemorySpan is a run of memory cells starting at Addr. Memory outside of
// any span holds zero.
type MemorySpan struct {
	Addr   int64   `cbor:"addr"`
	Values []int64 `cbor:"vals"`
}

// Snapshot returns a copy of the machine's current state; I/O channels are
// not included.
func (vm *VM) Snapshot() Snapshot {
	snap := Snapshot{
		PC:     vm.pc,
		Base:   vm.base,
		Halted: vm.halted,
		Steps:  vm.steps,
		Memory: vm.Memory(),
	}
	if vm.hasLast {
		last := vm.last
		snap.Last = &last
	}
	if vm.hasPhase {
		phase := vm.phase
		snap.Phase = &phase
	}
	return snap
}

func (vm *VM) restore(snap Snapshot) error {
	vm.pc = snap.PC
	vm.base = snap.Base
	vm.halted = snap.Halted
	vm.steps = snap.Steps
	if snap.Last != nil {
		vm.last, vm.hasLast = *snap.Last, true
	}
	if snap.Phase != nil {
		vm.phase, vm.hasPhase = *snap.Phase, true
	}
	for _, span := range snap.Memory {
		if span.Addr < 0 {
			return AddressError{Addr: span.Addr}
		}
		if err := vm.mem.Stor(uint(span.Addr), span.Values...); err != nil {
			return err
		}
	}
	return nil
}

// memorySpans converts allocated memory pages into spans, trimming the zeros
// at either end of each and dropping any left empty.
func memorySpans(spans []mem.Span) []MemorySpan {
	var out []MemorySpan
	for _, span := range spans {
		values := span.Values
		i, j := 0, len(values)
		for i < j && values[i] == 0 {
			i++
		}
		for j > i && values[j-1] == 0 {
			j--
		}
		if i < j {
			out = append(out, MemorySpan{Addr: int64(span.Base) + int64(i), Values: values[i:j]})
		}
	}
	return out
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("intcode: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// MarshalSnapshot serializes a Snapshot to canonical CBOR bytes.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	return snapshotEncMode.Marshal(snap)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("intcode: unmarshal snapshot: %w", err)
	}
	return snap, nil
}
