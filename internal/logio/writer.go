package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf style logging function, like testing.T.Logf, into
// an io.Writer: every complete line written is logged once, sans newline.
// Writes may come from many goroutines.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs each line completed by p, holding back any trailing partial
// line until a later Write or Flush completes it.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			return n, nil
		}
		lw.logLine(p[:i])
		p = p[i+1:]
	}
}

// Flush logs any partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.logLine(nil)
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) logLine(line []byte) {
	if len(lw.partial) > 0 {
		line = append(lw.partial, line...)
		lw.partial = lw.partial[:0]
	}
	lw.Logf("%s", bytes.TrimSuffix(line, []byte{'\r'}))
}
