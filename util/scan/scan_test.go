package scan

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

// failingReader returns <data> and then a read error
type failingReader struct {
	data string
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("disk is on fire")
	}
	r.read = true
	return copy(p, r.data), nil
}

func TestLines(t *testing.T) {
	collect := func(sc *Scanner) (lines []string) {
		for sc.Lines() {
			lines = append(lines, sc.Line)
		}
		return
	}

	sc := New(strings.NewReader("line 1\r\n" + "\r\n" + "  line 2  \n" + "line 3"))
	assert.Exactly(t, []string{"line 1", "", "  line 2  ", "line 3"}, collect(sc), "should return these lines")
	assert.Exactly(t, 4, sc.LineNum, "should count every line")
	assert.NoError(t, sc.Err(), "should not return error on EOF")
	assert.False(t, sc.Lines(), "should return false after the end of input")

	sc = New(strings.NewReader("a\n"))
	assert.Exactly(t, []string{"a"}, collect(sc), "should not return empty line after trailing line ending")

	sc = New(strings.NewReader("a\n\n"))
	assert.Exactly(t, []string{"a", ""}, collect(sc), "should return blank line before trailing line ending")

	sc = New(strings.NewReader(""))
	assert.Nil(t, collect(sc), "should not return anything for empty input")

	sc = New(&failingReader{data: "a\nb"})
	assert.Exactly(t, []string{"a"}, collect(sc), "should stop on read error")
	assert.ErrorContains(t, sc.Err(), "disk is on fire", "should return read error")
}
