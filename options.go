package intcode

// VMOption configures a VM under construction by New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

// WithInput sets the machine's input channel; by default any INPUT
// instruction fails with ErrStarvedInput.
func WithInput(in Input) VMOption { return inputOption{in} }

// WithInputs sets the machine's input to a Queue of values.
func WithInputs(values ...int64) VMOption { return inputOption{Values(values...)} }

// WithPhase sets a value to provide to the first INPUT instruction, before
// consulting the input channel.
func WithPhase(phase int64) VMOption { return phaseOption(phase) }

// WithOutput sets the machine's output channel, replacing any prior one.
// The machine always records its last output value regardless.
func WithOutput(out Output) VMOption { return outputOption{out} }

// WithTee adds an output channel, to receive values after any prior ones.
func WithTee(out Output) VMOption { return teeOption{out} }

// WithLogf enables trace logging of every instruction executed.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithMemLimit limits the highest memory address that may be used; 0 means
// no limit.
func WithMemLimit(limit uint) VMOption { return memLimitOption(limit) }

// WithPageSize sets the size of newly allocated memory pages.
func WithPageSize(size uint) VMOption { return pageSizeOption(size) }

// WithStepLimit limits the number of instructions that may be executed; 0
// means no limit.
func WithStepLimit(limit uint64) VMOption { return stepLimitOption(limit) }

// WithSnapshot restores machine state from a snapshot, instead of loading
// the tape given to New.
func WithSnapshot(snap Snapshot) VMOption { return snapshotOption(snap) }

type inputOption struct{ Input }
type outputOption struct{ Output }
type teeOption struct{ Output }
type phaseOption int64
type withLogfn func(mess string, args ...interface{})
type memLimitOption uint
type pageSizeOption uint
type stepLimitOption uint64
type snapshotOption Snapshot

func (i inputOption) apply(vm *VM) {
	if i.Input == nil {
		vm.in = starved{}
	} else {
		vm.in = i.Input
	}
}

func (o outputOption) apply(vm *VM)     { vm.out = o.Output }
func (o teeOption) apply(vm *VM)        { vm.out = multiOutput(vm.out, o.Output) }
func (p phaseOption) apply(vm *VM)      { vm.phase, vm.hasPhase = int64(p), true }
func (logfn withLogfn) apply(vm *VM)    { vm.logfn = logfn }
func (lim memLimitOption) apply(vm *VM) { vm.mem.Limit = uint(lim) }
func (sz pageSizeOption) apply(vm *VM)  { vm.mem.PageSize = uint(sz) }
func (lim stepLimitOption) apply(vm *VM) {
	vm.stepLimit = uint64(lim)
}

func (snap snapshotOption) apply(vm *VM) {
	s := Snapshot(snap)
	vm.snap = &s
}
