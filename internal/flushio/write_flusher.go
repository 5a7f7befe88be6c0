// Package flushio provides buffered writers that must be explicitly flushed.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Flusher is implemented by anything holding buffered data.
type Flusher interface {
	Flush() error
}

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flusher
}

// NewWriteFlusher returns w itself if it is already a WriteFlusher, w with a
// noop Flush if writes to it need no buffering, or else a bufio.Writer
// around w.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// Flush flushes any value that implements Flusher, returning nil otherwise.
func Flush(v interface{}) error {
	if fl, ok := v.(Flusher); ok {
		return fl.Flush()
	}
	return nil
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }
