package yamlfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	tests := []struct {
		input    any
		expected string
		ok       bool
	}{
		{"text", "text", true},
		{42, "42", true},
		{1.5, "1.5", true},
		{true, "true", true},
		{[]any{"a"}, "", false},
		{nil, "", false},
	}
	for _, test := range tests {
		actual, ok := AsString(test.input)
		assert.Exactly(t, test.expected, actual, "should convert %v", test.input)
		assert.Exactly(t, test.ok, ok, "should report conversion result of %v", test.input)
	}
}

func TestAsNumbers(t *testing.T) {
	i, ok := AsInt(2.0)
	assert.True(t, ok)
	assert.Exactly(t, 2, i, "should convert whole float")
	_, ok = AsInt(2.5)
	assert.False(t, ok, "should reject fractional float")
	i, _ = AsInt("15")
	assert.Exactly(t, 15, i, "should parse string")

	f, ok := AsFloat(3)
	assert.True(t, ok)
	assert.Exactly(t, 3.0, f, "should convert int")
	_, ok = AsFloat("abc")
	assert.False(t, ok, "should reject non-number string")

	b, ok := AsBool("true")
	assert.True(t, ok)
	assert.True(t, b, "should parse string")
	_, ok = AsBool(1)
	assert.False(t, ok, "should reject int")
}

func TestAsLists(t *testing.T) {
	strs, ok := AsStringList([]any{"a", 1, true})
	assert.True(t, ok)
	assert.Exactly(t, []string{"a", "1", "true"}, strs, "should convert scalars")

	ints, ok := AsIntList([]any{1, 2.0, "3"})
	assert.True(t, ok)
	assert.Exactly(t, []int{1, 2, 3}, ints, "should convert numbers")

	_, ok = AsIntList([]any{1, "x"})
	assert.False(t, ok, "should reject list with unconvertible item")
	_, ok = AsStringList("a")
	assert.False(t, ok, "should reject non-list")
}
