// Package comments keeps track of YAML comments independently of the values they describe.
//
// Comments are attached to a KeyTree of the document keys, read from the source text by the Parser, stored and
// looked up by dotted path through the Mapper, converted between the text users type and the text stored in the
// file by the Formatter and written back into freshly emitted YAML by Dump.
package comments

import (
	"github.com/cockroachdb/errors"
)

// Indicator starts every YAML comment
const Indicator = "#"

// Type represents position of a comment relative to it's key
type Type uint8

const (
	// Block comment is placed on it's own lines above the key
	Block Type = iota
	// Side comment is placed on the same line as the key and it's value
	Side
)

// String is used to satisfy fmt.Stringer interface
func (t Type) String() string {
	if t == Side {
		return "side"
	}
	return "block"
}

var (
	// ErrRead is returned if the source of comments could not be read
	ErrRead = errors.New("read comments")
	// ErrInvalidPrefix is returned if comment prefix or suffix would produce invalid YAML
	ErrInvalidPrefix = errors.New("invalid comment prefix")
)

// Options represents settings shared by the key tree, parser and dumper
type Options struct {
	// Indent is the amount of spaces used to indent nested mappings
	Indent int
	// IndentList is the amount of spaces used to indent list items relative to their parent key
	IndentList int
	// Separator splits path into keys
	Separator string
	// Header is a clean comment written at the top of the document and separated from the first key with a blank line
	Header string
}

// DefaultOptions returns options with 2 spaces indentation and '.' path separator
func DefaultOptions() Options {
	return Options{
		Indent:     2,
		IndentList: 2,
		Separator:  ".",
	}
}
