package yamlfile

import (
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

// Validate checks YAML syntax of <data>, returning error marked as ErrInvalidConfig with the source around the problem
// highlighted (ANSI colored if <colored> is true).
//
// Configuration files hold one document, streams of several documents are rejected.
func Validate(data []byte, colored bool) error {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return errors.Mark(errors.Newf("Invalid YAML:\n%v", yaml.FormatError(err, colored, true)), ErrInvalidConfig)
	}
	if len(file.Docs) > 1 {
		return errors.Mark(errors.Newf("Config has %v documents, expected one", len(file.Docs)), ErrInvalidConfig)
	}
	return nil
}
