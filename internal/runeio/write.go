package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteRune writes a single rune to w, using the most specific writing
// method that w supports: ASCII runes go through io.ByteWriter, others through
// WriteRune or io.StringWriter, falling back to a plain utf8 encoded Write.
func WriteRune(w io.Writer, r rune) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if r < utf8.RuneSelf {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}

// IsRune returns true if v is a valid unicode codepoint that may be written
// by WriteRune.
func IsRune(v int64) bool {
	return 0 <= v && v <= utf8.MaxRune && utf8.ValidRune(rune(v))
}
