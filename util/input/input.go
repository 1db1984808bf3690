package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// AskYesNo prints <prompt> to <out> and returns true if user answers 'y' or 'Y' and false if 'n' or 'N'.
//
// Asks again on any other answer. Returns <def> if <in> is exhausted before a valid answer is read. Pass the same
// *bufio.Reader as <in> to ask several questions without losing buffered input.
func AskYesNo(log *logrus.Logger, in io.Reader, out io.Writer, prompt string, def bool) bool {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	answer, ok := ask(log, br, out, prompt, func(input string) bool {
		return lo.Contains([]string{"y", "n"}, strings.ToLower(input))
	})
	if !ok {
		return def
	}
	return strings.ToLower(answer) == "y"
}

// ask prints <prompt> to <out> and returns trimmed line read from <in> and true once <valid> accepts it.
//
// Returns false if <in> ends or fails before that.
func ask(log *logrus.Logger, in *bufio.Reader, out io.Writer, prompt string, valid func(string) bool) (string, bool) {
	for {
		fmt.Fprint(out, prompt)
		input, err := in.ReadString('\n')
		input = strings.TrimSpace(input)
		if valid(input) {
			return input, true
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error(errors.Wrap(err, "Read from standard input"))
			}
			return "", false
		}
	}
}
