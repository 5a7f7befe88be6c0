package runeio_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/intcode/internal/runeio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainWriter struct{ buf bytes.Buffer }

func (pw *plainWriter) Write(p []byte) (int, error) { return pw.buf.Write(p) }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func TestWriteRune(t *testing.T) {
	for _, r := range []rune{'a', '\n', 'é', '世', '🙂'} {
		var sb strings.Builder
		n, err := runeio.WriteRune(&sb, r)
		require.NoError(t, err)
		assert.Equal(t, string(r), sb.String())
		assert.Equal(t, len(string(r)), n)

		var pw plainWriter
		n, err = runeio.WriteRune(&pw, r)
		require.NoError(t, err)
		assert.Equal(t, string(r), pw.buf.String(), "expected plain writer to get utf8")
		assert.Equal(t, len(string(r)), n)
	}
}

func TestIsRune(t *testing.T) {
	assert.True(t, runeio.IsRune('A'))
	assert.True(t, runeio.IsRune(0))
	assert.False(t, runeio.IsRune(-1))
	assert.False(t, runeio.IsRune(0xd800), "surrogate halves are not runes")
	assert.False(t, runeio.IsRune(1125899906842624))
}

func TestNewReader(t *testing.T) {
	sr := strings.NewReader("x")
	assert.Equal(t, runeio.Reader(sr), runeio.NewReader(sr), "expected passthrough")

	rr := runeio.NewReader(namedReader{strings.NewReader("héllo"), "greeting"})
	named, ok := rr.(interface{ Name() string })
	require.True(t, ok, "expected name to be retained")
	assert.Equal(t, "greeting", named.Name())

	var got []rune
	for {
		r, _, err := rr.ReadRune()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, []rune("héllo"), got)
}
