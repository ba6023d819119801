package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader yields only entire newline-delimited lines per read. Traces that
// are still being written usually end in a partial line, and handing that
// fragment to the CSV parser would corrupt the record; instead the fragment
// is held back until its terminating newline arrives, and the read reports
// EOF so that followers know to wait for more data. Errors other than EOF are
// terminal and pass through to the caller.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(b []byte) (int, error) {
	line, err := l.r.ReadBytes('\n')
	if err != nil {
		// No newline yet; stash the fragment for the next complete read.
		l.pending = append(l.pending, line...)
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	var n int
	if len(l.pending) > 0 {
		n = copy(b, l.pending)
		l.pending = l.pending[:copy(l.pending, l.pending[n:])]
		b = b[n:]
	}
	return n + copy(b, line), nil
}
