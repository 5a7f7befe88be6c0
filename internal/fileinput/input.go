// Package fileinput provides rune reading over a queue of named input streams,
// tracking the location of each rune read for diagnostics.
package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jcorbin/intcode/internal/runeio"
)

// Location names a position within an Input stream.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string {
	if loc.Col == 0 {
		return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col)
}

// Line combines a Location along with a bytes.Buffer holding its content.
type Line struct {
	Location
	bytes.Buffer
}

func (il *Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. The location of the last rune read is available in At, and
// the line being scanned in Scan.
type Input struct {
	rr    runeio.Reader
	Queue []io.Reader
	At    Location
	Scan  Line
}

// ReadRune reads one rune from the current input stream, moving on to the
// next stream in Queue when the current one is exhausted.
// Returns io.EOF once all streams have been read.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}

		r, n, err := in.rr.ReadRune()
		if n > 0 {
			in.Scan.Col++
			in.At = in.Scan.Location
			if r == '\n' {
				in.nextLine()
			} else {
				in.Scan.WriteRune(r)
			}
			return r, n, nil
		}

		if err != io.EOF {
			return 0, 0, err
		}
		in.closeIn()
	}
}

func (in *Input) nextLine() {
	in.Scan.Reset()
	in.Scan.Line++
	in.Scan.Col = 0
}

func (in *Input) closeIn() {
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.Scan.Reset()
	in.Scan.Name = nameOf(r)
	in.Scan.Line = 1
	in.Scan.Col = 0
	return true
}

// NamedReader attaches a name to r, for use in Location.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
