// Package logio provides leveled line logging and adapters between printf
// style logging functions and io.Writer.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/jcorbin/intcode/internal/panicerr"
)

// Logger implements a leveled logging facility around an output stream.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int
}

// NewLogger creates a Logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{output: out}
}

// SetOutput sets the logger's output stream, returning the prior one.
func (log *Logger) SetOutput(out io.Writer) (prior io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	prior, log.output = log.output, out
	return prior
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf. The stack of a recovered
// panic follows on its own "STACK" entry.
func (log *Logger) ErrorIf(err error) {
	switch {
	case err == nil:
	case panicerr.IsPanic(err):
		log.Errorf("%v", err)
		log.Printf("STACK", "%s", panicerr.PanicStack(err))
	default:
		log.Errorf("%+v", err)
	}
}

// Errorf is like `Printf("ERROR", ...)` but additionally retains state so that
// ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf("ERROR", mess, args...)
	log.exitCode = 1
}

// Printf prints a line to the output stream like "level: message...\n".
// Any io error is reported at "ERROR" level, also setting ExitCode.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.printf("ERROR", "log write failed: %v", err)
		log.exitCode = 2
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	log.buf.Reset()
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		return nil
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}
