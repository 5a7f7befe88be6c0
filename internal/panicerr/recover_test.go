package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/jcorbin/intcode/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	for _, tc := range []struct {
		name    string
		err     string
		wraps   string
		fun     func() error
		isPanic bool
		isExit  bool
	}{
		{
			name:    "",
			err:     "paniced: shrug",
			wraps:   "shrug",
			isPanic: true,
			fun:     func() error { panic(errors.New("shrug")) },
		},
		{
			name:   "",
			err:    "runtime.Goexit called",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name:    "panic err",
			err:     "panic err paniced: bang",
			wraps:   "bang",
			isPanic: true,
			fun:     func() error { panic(errors.New("bang")) },
		},
		{
			name:    "hello panic",
			err:     "hello panic paniced: hello",
			isPanic: true,
			fun:     func() error { panic("hello") },
		},
		{
			name:   "exit",
			err:    "exit called runtime.Goexit",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
		{
			name:    "index panic",
			err:     "index panic paniced: runtime error: index out of range [1] with length 0",
			isPanic: true,
			fun:     func() error { _ = ([]int)(nil)[1]; return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := panicerr.Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
				if tc.wraps != "" {
					assert.EqualError(t, errors.Unwrap(err), tc.wraps, "expected panic(error) value")
				}
			}
			assert.Equal(t, tc.isPanic, panicerr.IsPanic(err), "expected IsPanic")
			assert.Equal(t, tc.isExit, panicerr.IsExit(err), "expected IsExit")
			stack := panicerr.PanicStack(err)
			if tc.isPanic {
				assert.NotEqual(t, "", stack, "expected a stack trace")
			} else {
				assert.Equal(t, "", stack, "expected no stack trace")
			}
		})
	}
}

func TestRecover_stacktrace(t *testing.T) {
	err := panicerr.Recover("", func() error {
		panic("nope")
	})
	require.Error(t, err, "must have a recovered error")
	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), panicerr.PanicStack(err)),
		"expected verbose format to end with a stack trace")
}
