package scan

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Scanner represents line scanner over a reader
type Scanner struct {
	rd      *bufio.Reader
	done    bool
	err     error
	Line    string // Current line without line ending
	LineNum int    // Number of the current line, starting from 1
}

// New returns new scanner reading from <r>
func New(r io.Reader) *Scanner {
	return &Scanner{rd: bufio.NewReader(r)}
}

// Lines returns true for every line of text read from the reader given to Scanner.
//
// Unlike bufio.Scanner, it has no line length limit and keeps leading and trailing space characters, only line
// endings (\n, \r\n) are removed.
//
// Returns false at the end of input or if read failed, use Err() to distinguish these cases.
func (s *Scanner) Lines() bool {
	if s.done {
		return false
	}
	line, err := s.rd.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = errors.Wrapf(err, "Read line %v", s.LineNum+1)
			return false
		}
		// Last line without line ending
		if line == "" {
			return false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	s.Line = strings.TrimSuffix(line, "\r")
	s.LineNum++
	return true
}

// Err returns the first non-EOF error encountered by Lines()
func (s *Scanner) Err() error {
	return s.err
}
