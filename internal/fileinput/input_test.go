package fileinput_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/intcode/internal/fileinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{
		fileinput.NamedReader("a", strings.NewReader("1,2\n3")),
		fileinput.NamedReader("b", strings.NewReader("4")),
	}}

	type read struct {
		r   rune
		loc string
	}
	var reads []read
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		reads = append(reads, read{r, in.At.String()})
	}

	assert.Equal(t, []read{
		{'1', "a:1:1"},
		{',', "a:1:2"},
		{'2', "a:1:3"},
		{'\n', "a:1:4"},
		{'3', "a:2:1"},
		{'4', "b:1:1"},
	}, reads)
}

func TestInput_scanLine(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{
		fileinput.NamedReader("prog", strings.NewReader("1,0,\n99,x")),
	}}
	for i := 0; i < 9; i++ {
		_, _, err := in.ReadRune()
		require.NoError(t, err)
	}
	assert.Equal(t, `prog:2:4 "99,x"`, in.Scan.String())
}

func TestInput_unnamed(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{strings.NewReader("7")}}
	r, _, err := in.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, '7', r)
	assert.Equal(t, "<unnamed *strings.Reader>:1:1", in.At.String())
}
