package cli

import (
	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

// Flags represents command line flags
type Flags struct {
	Version       bool              `short:"v" long:"version"       description:"Print the program version"`
	LogLevel      logrus.Level      `short:"l" long:"logLevel"      description:"Logging level. Can be from 0 (least verbose) to 6 (most verbose)"`
	SettingsPath  string            `short:"s" long:"settingsPath"  description:"Program settings file path to read from or initialize a default"`
	Inputs        []string          `short:"i" long:"input"         description:"YAML file to process. Can be a local file or URL. Can be specified multiple times"`
	OutputDir     string            `short:"o" long:"outputDir"     description:"Directory to write processed files to. Local inputs are overwritten in place if not set"`
	CommentFormat string            `short:"f" long:"commentFormat" description:"Format of comments added with --comment. Overrides program settings" choice:"default" choice:"pretty" choice:"blank_line" choice:"raw"`
	Indent        int               `          long:"indent"        description:"Amount of spaces to indent nested keys with. Overrides program settings"`
	Check         bool              `short:"c" long:"check"         description:"Only check if inputs are valid YAML documents"`
	List          bool              `          long:"list"          description:"Print comments of inputs as a table"`
	Yes           bool              `short:"y" long:"yes"           description:"Overwrite existing output files without asking"`
	Watch         bool              `short:"w" long:"watch"         description:"Process inputs again on interval from program settings until interrupted"`
	Set           map[string]string `          long:"set"           description:"Set value at path, in format of path:value. Value is parsed as YAML"`
	Comment       map[string]string `          long:"comment"       description:"Set block comment above path, in format of path:comment. Empty comment removes it"`
}

// Parse returns a structure initialized with command line arguments and error if parsing failed
func Parse() (Flags, error) {
	flags := Flags{
		// Set defaults
		LogLevel:     logrus.InfoLevel,
		SettingsPath: "flight_cfg.yaml",
	}
	parser := goFlags.NewParser(&flags, goFlags.Options(goFlags.Default))
	_, err := parser.Parse()
	return flags, errors.Wrap(err, "Parse CLI arguments")
}

// IsErrOfType returns true if <err> is of type <t>
func IsErrOfType(err error, t goFlags.ErrorType) bool {
	goFlagsErr := &goFlags.Error{}
	if ok := errors.As(err, &goFlagsErr); ok && goFlagsErr.Type == t {
		return true
	}
	return false
}
