// Package runeio provides rune oriented reading and writing helpers.
package runeio

import (
	"bufio"
	"io"
)

// Reader can read both bytes and runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

type named interface{ Name() string }

// NewReader returns r itself when it can already read runes, or r buffered
// by a bufio.Reader otherwise. The Name() of a named r survives buffering.
func NewReader(r io.Reader) Reader {
	rr, ok := r.(Reader)
	if ok {
		return rr
	}
	rr = bufio.NewReader(r)
	if nom, ok := r.(named); ok {
		return namedReader{rr, nom.Name()}
	}
	return rr
}

type namedReader struct {
	Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
