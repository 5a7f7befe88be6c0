package intcode

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/runeio"
)

// Input provides values to INPUT instructions. Implementations that cannot
// produce a value should return an error wrapping ErrStarvedInput.
type Input interface {
	Input(ctx context.Context) (int64, error)
}

// Output consumes values from OUTPUT instructions, in program order.
// Implementations may also implement Flush() error, which is called before
// the machine asks for input, and when it halts.
type Output interface {
	Output(ctx context.Context, value int64) error
}

// InputFunc adapts a function to the Input interface.
type InputFunc func(ctx context.Context) (int64, error)

// Input calls f.
func (f InputFunc) Input(ctx context.Context) (int64, error) { return f(ctx) }

// OutputFunc adapts a function to the Output interface.
type OutputFunc func(ctx context.Context, value int64) error

// Output calls f.
func (f OutputFunc) Output(ctx context.Context, value int64) error { return f(ctx, value) }

// Constant returns an Input that always provides value.
func Constant(value int64) Input { return constant(value) }

type constant int64

func (c constant) Input(context.Context) (int64, error) { return int64(c), nil }

type starved struct{}

func (starved) Input(context.Context) (int64, error) { return 0, ErrStarvedInput }

// Phased returns an Input that provides phase once, and then defers to next.
func Phased(phase int64, next Input) Input {
	return &phased{phase: phase, next: next}
}

type phased struct {
	phase int64
	used  bool
	next  Input
}

func (ph *phased) Input(ctx context.Context) (int64, error) {
	if !ph.used {
		ph.used = true
		return ph.phase, nil
	}
	if ph.next == nil {
		return 0, ErrStarvedInput
	}
	return ph.next.Input(ctx)
}

// Queue is a first-in first-out queue of values that never blocks: reading an
// empty Queue is ErrStarvedInput. It is both an Input and an Output, so it
// may be used to link machines that run one after another.
type Queue struct {
	values []int64
}

// Values returns a Queue holding values.
func Values(values ...int64) *Queue {
	return &Queue{values: append([]int64(nil), values...)}
}

// Push appends values to the queue.
func (q *Queue) Push(values ...int64) { q.values = append(q.values, values...) }

// Len returns the number of values remaining in the queue.
func (q *Queue) Len() int { return len(q.values) }

// Input shifts the first value from the queue.
func (q *Queue) Input(context.Context) (int64, error) {
	if len(q.values) == 0 {
		return 0, ErrStarvedInput
	}
	value := q.values[0]
	q.values = q.values[1:]
	return value, nil
}

// Output pushes value onto the queue.
func (q *Queue) Output(_ context.Context, value int64) error {
	q.Push(value)
	return nil
}

// Pipe is an unbounded queue of values shared between concurrently running
// machines. Input blocks until a value is available, the pipe is closed, or
// the context is done. Pipes support any number of writers, but only one
// reader.
type Pipe struct {
	mu     sync.Mutex
	values []int64
	closed bool
	ready  chan struct{}
}

// NewPipe creates a new pipe holding any initial values.
func NewPipe(values ...int64) *Pipe {
	return &Pipe{
		values: append([]int64(nil), values...),
		ready:  make(chan struct{}, 1),
	}
}

// Push appends values to the pipe, waking any blocked reader.
func (p *Pipe) Push(values ...int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPipeClosed
	}
	p.values = append(p.values, values...)
	p.notify()
	return nil
}

// Close marks the pipe as done; remaining values may still be read, after
// which Input returns ErrStarvedInput.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.notify()
}

func (p *Pipe) notify() {
	select {
	case p.ready <- struct{}{}:
	default:
	}
}

// Input waits for and shifts the first value from the pipe.
func (p *Pipe) Input(ctx context.Context) (int64, error) {
	for {
		p.mu.Lock()
		if len(p.values) > 0 {
			value := p.values[0]
			p.values = p.values[1:]
			p.mu.Unlock()
			return value, nil
		}
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return 0, fmt.Errorf("pipe closed: %w", ErrStarvedInput)
		}

		select {
		case <-p.ready:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// Output pushes value onto the pipe.
func (p *Pipe) Output(_ context.Context, value int64) error { return p.Push(value) }

// Stateful threads a caller owned state value through a machine's input and
// output. The machine never inspects State; it only relays values between In,
// Out, and the running program.
type Stateful[S any] struct {
	State S

	// In derives the next input value from the current state.
	In func(state S) int64

	// Out returns the state updated by an output value.
	Out func(state S, value int64) S
}

// Input calls In with the current state.
func (sc *Stateful[S]) Input(context.Context) (int64, error) {
	if sc.In == nil {
		return 0, ErrStarvedInput
	}
	return sc.In(sc.State), nil
}

// Output replaces the current state with the result of Out.
func (sc *Stateful[S]) Output(_ context.Context, value int64) error {
	if sc.Out != nil {
		sc.State = sc.Out(sc.State, value)
	}
	return nil
}

// Recorder records every value output.
type Recorder struct {
	Values []int64
}

// Output appends value.
func (rec *Recorder) Output(_ context.Context, value int64) error {
	rec.Values = append(rec.Values, value)
	return nil
}

// Last returns the last value recorded.
func (rec *Recorder) Last() (int64, bool) {
	if i := len(rec.Values) - 1; i >= 0 {
		return rec.Values[i], true
	}
	return 0, false
}

// TextOutput returns an Output that writes each value to w as a decimal
// line. Writes are buffered until the machine halts or next asks for input.
func TextOutput(w io.Writer) Output {
	return &textOutput{out: flushio.NewWriteFlusher(w)}
}

type textOutput struct {
	out flushio.WriteFlusher
	buf []byte
}

func (to *textOutput) Output(_ context.Context, value int64) error {
	to.buf = strconv.AppendInt(to.buf[:0], value, 10)
	to.buf = append(to.buf, '\n')
	_, err := to.out.Write(to.buf)
	return err
}

func (to *textOutput) Flush() error { return to.out.Flush() }

// RuneInput returns an Input that provides the runes read from r, as used by
// programs that speak ASCII. The end of r is ErrStarvedInput.
func RuneInput(r io.Reader) Input {
	return runeInput{runeio.NewReader(r)}
}

type runeInput struct{ rr io.RuneReader }

func (ri runeInput) Input(context.Context) (int64, error) {
	r, _, err := ri.rr.ReadRune()
	if err == io.EOF {
		return 0, fmt.Errorf("rune input: %w", ErrStarvedInput)
	} else if err != nil {
		return 0, err
	}
	return int64(r), nil
}

// RuneOutput returns an Output that writes values to w as runes. Values that
// are not valid runes are written as decimal lines instead, which is how
// ASCII speaking programs usually report a final answer.
// Writes are buffered until the machine halts or next asks for input.
func RuneOutput(w io.Writer) Output {
	return &runeOutput{out: flushio.NewWriteFlusher(w)}
}

type runeOutput struct {
	out flushio.WriteFlusher
}

func (ro *runeOutput) Output(_ context.Context, value int64) error {
	if runeio.IsRune(value) {
		_, err := runeio.WriteRune(ro.out, rune(value))
		return err
	}
	_, err := fmt.Fprintf(ro.out, "\n%d\n", value)
	return err
}

func (ro *runeOutput) Flush() error { return ro.out.Flush() }

// teeOutput delivers each value to several outputs in order.
type teeOutput []Output

func (to teeOutput) Output(ctx context.Context, value int64) error {
	for _, out := range to {
		if err := out.Output(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

func (to teeOutput) Flush() (err error) {
	for _, out := range to {
		if ferr := flushio.Flush(out); err == nil {
			err = ferr
		}
	}
	return err
}

func appendOutput(all teeOutput, some ...Output) teeOutput {
	for _, one := range some {
		if many, ok := one.(teeOutput); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}

func multiOutput(a, b Output) Output {
	switch outs := appendOutput(nil, a, b); len(outs) {
	case 0:
		return nil
	case 1:
		return outs[0]
	default:
		return outs
	}
}
