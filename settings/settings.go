// Package settings reads settings of the program itself
package settings

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"flight_cfg/comments"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

//go:embed default.yaml
var defBytes []byte

// Root represents root settings of the program
type Root struct {
	General General `koanf:"general"`
	Format  Format  `koanf:"format"`
	Watch   Watch   `koanf:"watch"`
	Remote  Remote  `koanf:"remote"`
}

// General represents general settings of the program
type General struct {
	// Language represents code of the language used for program messages
	Language string `koanf:"language"`

	// LocalesDir represents directory with translation files
	LocalesDir string `koanf:"locales_dir"`

	// Workers represents amount of files processed at the same time
	Workers int `koanf:"workers"`
}

// Format represents settings of written YAML files
type Format struct {
	// CommentFormat represents policy of comments added by the program
	CommentFormat comments.Format `koanf:"comment_format"`

	// Indent represents amount of spaces used to indent nested keys
	Indent int `koanf:"indent"`

	// PathSeparator represents separator of key paths
	PathSeparator string `koanf:"path_separator"`

	// Header represents comment written at the top of every processed file
	Header string `koanf:"header"`
}

// Watch represents settings of watch mode
type Watch struct {
	// Interval represents time between re-processing of files
	Interval time.Duration `koanf:"interval"`
}

// Remote represents settings of inputs given as URL
type Remote struct {
	// Timeout represents response timeout
	Timeout time.Duration `koanf:"timeout"`
}

// MissingFieldsError represents error returned if settings file is missing fields
type MissingFieldsError struct {
	Fields []string
}

// Error is used to satisfy golang error interface
func (e MissingFieldsError) Error() string {
	msg := "Settings file is missing fields. Delete it to create a new one or add missing fields manually"
	return fmt.Sprintf("%v: %v", msg, strings.Join(e.Fields, ", "))
}

// BadValueError represents error returned if settings file has invalid value
type BadValueError struct {
	Field  string
	Reason string
}

// Error is used to satisfy golang error interface
func (e BadValueError) Error() string {
	return fmt.Sprintf("Invalid value of %v: %v", e.Field, e.Reason)
}

// Init returns settings instance and false if settings file at <path> already exist.
//
// If settings file does not exist, writes a default one, returns default instance and true.
//
// Can return errors defined in this package: MissingFieldsError, BadValueError.
func Init(log *logrus.Logger, path string) (Root, bool, error) {
	log.Info("Reading program settings")

	ko := koanf.New(".")
	if err := ko.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Root{}, false, errors.Wrap(err, "Load settings")
		}
		log.Infof("Settings file not found, creating a default at %v", path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Root{}, false, errors.Wrap(err, "Create settings directory")
		}
		if err := os.WriteFile(path, defBytes, 0644); err != nil {
			return Root{}, false, errors.Wrap(err, "Write default settings")
		}
		return NewDefault(), true, nil
	}

	var root Root
	metadata := mapstructure.Metadata{}
	err := ko.UnmarshalWithConf("", &root, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				// Parse comment format names
				func(from, to reflect.Type, fromData any) (any, error) {
					if to == reflect.TypeOf(comments.Default) && from.Kind() == reflect.String {
						return comments.ParseFormat(reflect.ValueOf(fromData).String())
					}
					return fromData, nil
				},
				mapstructure.StringToTimeDurationHookFunc(),
			),
			ErrorUnused:      true,
			Metadata:         &metadata,
			Result:           &root,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return root, false, errors.Wrap(err, "Decode settings")
	}
	if len(metadata.Unset) > 0 {
		return root, false, errors.Wrap(MissingFieldsError{Fields: metadata.Unset}, "Check settings")
	}
	if err := root.validate(); err != nil {
		return root, false, errors.Wrap(err, "Validate settings")
	}
	return root, false, nil
}

// validate returns error if any value of <r> is out of range
func (r Root) validate() error {
	switch {
	case r.General.Language == "":
		return BadValueError{Field: "general.language", Reason: "should not be empty"}
	case r.General.Workers < 1:
		return BadValueError{Field: "general.workers", Reason: "should be at least 1"}
	case r.Format.Indent < 2 || r.Format.Indent > 9:
		return BadValueError{Field: "format.indent", Reason: "should be from 2 to 9"}
	case r.Watch.Interval < time.Second:
		return BadValueError{Field: "watch.interval", Reason: "should be at least 1s"}
	}
	return nil
}

// NewDefault returns default settings as written in "default.yaml" file
func NewDefault() Root {
	return Root{
		General: General{
			Language:   "en",
			LocalesDir: "locales",
			Workers:    4,
		},
		Format: Format{
			CommentFormat: comments.Default,
			Indent:        2,
			PathSeparator: ".",
			Header:        "",
		},
		Watch: Watch{
			Interval: time.Second * 30,
		},
		Remote: Remote{
			Timeout: time.Second * 10,
		},
	}
}
