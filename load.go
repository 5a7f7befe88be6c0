package intcode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/jcorbin/intcode/internal/fileinput"
)

var (
	errEmptyTape  = errors.New("empty program")
	errEmptyField = errors.New("empty field")
	errNoComma    = errors.New("expected comma")
)

// ParseError describes a problem parsing program text.
type ParseError struct {
	At    string // name:line:column
	Token string
	Err   error
}

func (pe *ParseError) Error() string {
	if pe.Token == "" {
		return fmt.Sprintf("%v: %v", pe.At, pe.Err)
	}
	return fmt.Sprintf("%v: %q: %v", pe.At, pe.Token, pe.Err)
}

func (pe *ParseError) Unwrap() error { return pe.Err }

// ParseTape parses program text: decimal integers separated by commas.
// Whitespace, including a trailing newline, is allowed around each integer.
func ParseTape(r io.Reader) ([]int64, error) {
	return parseTape(&fileinput.Input{Queue: []io.Reader{r}})
}

// ParseTapeString parses program text from a string.
func ParseTapeString(s string) ([]int64, error) {
	return ParseTape(fileinput.NamedReader("<string>", strings.NewReader(s)))
}

// ReadTapeFile parses program text from the named file.
func ReadTapeFile(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTape(f)
}

func parseTape(in *fileinput.Input) (tape []int64, _ error) {
	var (
		tok   strings.Builder
		tokAt fileinput.Location
		ended bool // token ended by whitespace
	)

	field := func() error {
		if tok.Len() == 0 {
			return &ParseError{At: in.At.String(), Err: errEmptyField}
		}
		val, err := strconv.ParseInt(tok.String(), 10, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return &ParseError{At: tokAt.String(), Token: tok.String(), Err: err}
		}
		tape = append(tape, val)
		tok.Reset()
		ended = false
		return nil
	}

	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch {
		case r == ',':
			if err := field(); err != nil {
				return nil, err
			}

		case unicode.IsSpace(r):
			ended = tok.Len() > 0

		case ended:
			return nil, &ParseError{At: in.At.String(), Token: string(r), Err: errNoComma}

		default:
			if tok.Len() == 0 {
				tokAt = in.At
			}
			tok.WriteRune(r)
		}
	}

	if tok.Len() == 0 && len(tape) == 0 {
		return nil, errEmptyTape
	}
	if err := field(); err != nil {
		return nil, err
	}
	return tape, nil
}
