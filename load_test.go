package intcode

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTape(t *testing.T) {
	for _, tc := range []struct {
		name    string
		text    string
		want    []int64
		wantErr string
	}{
		{name: "single", text: "99", want: []int64{99}},
		{name: "simple", text: "1,0,0,0,99", want: []int64{1, 0, 0, 0, 99}},
		{name: "trailing newline", text: "1002,4,3,4,33\n", want: []int64{1002, 4, 3, 4, 33}},
		{name: "spaced", text: " 109, -1 ,\n204,\t-1\r\n", want: []int64{109, -1, 204, -1}},
		{name: "wide", text: "104,1125899906842624,99", want: []int64{104, 1125899906842624, 99}},

		{name: "empty", text: "", wantErr: "empty program"},
		{name: "blank", text: " \n", wantErr: "empty program"},
		{name: "empty field", text: "1,,2", wantErr: "<string>:1:3: empty field"},
		{name: "trailing comma", text: "1,2,\n", wantErr: "<string>:1:5: empty field"},
		{name: "junk", text: "1,x,3", wantErr: `<string>:1:3: "x": invalid syntax`},
		{name: "missing comma", text: "1 2", wantErr: `<string>:1:3: "2": expected comma`},
		{name: "overflow", text: "99999999999999999999", wantErr: `<string>:1:1: "99999999999999999999": value out of range`},
		{name: "later line", text: "1,\n2,\nz9", wantErr: `<string>:3:1: "z9": invalid syntax`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tape, err := ParseTapeString(tc.text)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, tape)
		})
	}
}

func TestParseTape_errors(t *testing.T) {
	_, err := ParseTape(strings.NewReader("1,x"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected a parse error, got %v", err)
	assert.Equal(t, "<unnamed *strings.Reader>:1:3", pe.At)
	assert.Equal(t, "x", pe.Token)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))

	_, err = ParseTapeString("1,2,")
	assert.True(t, errors.Is(err, errEmptyField))
}

func TestReadTapeFile(t *testing.T) {
	dir := t.TempDir()

	name := filepath.Join(dir, "day2.txt")
	require.NoError(t, os.WriteFile(name, []byte("1,9,10,3,2,3,11,0,99,30,40,50\n"), 0o644))
	tape, err := ReadTapeFile(name)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, tape)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1,2\n3\n"), 0o644))
	_, err = ReadTapeFile(bad)
	assert.Equal(t, bad+`:2:1: "3": expected comma`, err.Error())

	_, err = ReadTapeFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected not exist error, got %v", err)
}
