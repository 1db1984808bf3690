package input

import (
	"bufio"
	"strings"
	"testing"

	"flight_cfg/util/logger"

	"github.com/stretchr/testify/assert"
)

func TestAskYesNo(t *testing.T) {
	log := logger.NewDiscard()
	var out strings.Builder

	assert.True(t, AskYesNo(log, strings.NewReader("Y\n"), &out, "prompt ", false), "should accept upper case yes")
	assert.True(t, AskYesNo(log, strings.NewReader("y\n"), &out, "prompt ", false), "should accept lower case yes")
	assert.False(t, AskYesNo(log, strings.NewReader("N\n"), &out, "prompt ", true), "should accept upper case no")
	assert.False(t, AskYesNo(log, strings.NewReader(" n \n"), &out, "prompt ", true), "should trim answer")
	assert.Exactly(t, "prompt prompt prompt prompt ", out.String(), "should print prompt once per question")

	out.Reset()
	assert.True(t, AskYesNo(log, strings.NewReader("maybe\nyes\ny"), &out, "? ", false),
		"should ask again until answer is valid")
	assert.Exactly(t, "? ? ? ", out.String(), "should print prompt on every attempt")

	assert.True(t, AskYesNo(log, strings.NewReader(""), &out, "? ", true), "should return default on end of input")
	assert.False(t, AskYesNo(log, strings.NewReader("x\n"), &out, "? ", false),
		"should return default if input ends without valid answer")
}

func TestAsk(t *testing.T) {
	log := logger.NewDiscard()
	var out strings.Builder

	in := bufio.NewReader(strings.NewReader(" 0 \n1\n"))
	answer, ok := ask(log, in, &out, "prompt\n", func(s string) bool {
		return s == "1"
	})
	assert.True(t, ok, "should read valid answer")
	assert.Exactly(t, "1", answer, "should read and trim input")
	assert.Exactly(t, "prompt\nprompt\n", out.String(), "should print prompt twice")
}

func TestAskYesNoSharedReader(t *testing.T) {
	log := logger.NewDiscard()
	var out strings.Builder

	in := bufio.NewReader(strings.NewReader("y\nn\n"))
	assert.True(t, AskYesNo(log, in, &out, "? ", false), "should read the first answer")
	assert.False(t, AskYesNo(log, in, &out, "? ", true), "should read the second answer from the same reader")
}
