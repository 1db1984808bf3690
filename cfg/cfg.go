// Package cfg provides versioned YAML configuration files with typed entries and upgrade steps between versions
package cfg

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"flight_cfg/comments"
	"flight_cfg/util/file"
	"flight_cfg/yamlfile"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

const (
	// DefaultVersionKey is the key used to store config version if no other key is given
	DefaultVersionKey = "version"
	// DefaultVersionComment is the comment written above the version key if no other comment is given
	DefaultVersionComment = "Don't touch this – it's used to track the version of the config."
)

var (
	// ErrVersionAhead is returned on load if stored config version is higher than the target version
	ErrVersionAhead = errors.New("config version is ahead of target version")
	// ErrBackup is returned on load if backup copy of the config file could not be created before upgrade
	ErrBackup = errors.New("config backup failed")
)

// VersionAheadError represents error returned if config was written by a newer version of the program
type VersionAheadError struct {
	Path    string
	Version int
	Target  int
}

// Error is used to satisfy golang error interface
func (e VersionAheadError) Error() string {
	return fmt.Sprintf("Config %v has version %v which is higher than supported version %v. Refusing to downgrade",
		e.Path, e.Version, e.Target)
}

// File represents configuration file with entries, version tracking and upgrade steps
type File struct {
	*yamlfile.Config

	path    string
	log     *logrus.Logger
	entries []*Entry
	version *versionEntry
	now     func() time.Time
}

// versionEntry represents key holding version of the config
type versionEntry struct {
	key     string
	target  int
	comment func() string
}

// New returns config file at <path> using <opts>. Nothing is read until Load or Init is called.
func New(log *logrus.Logger, path string, opts yamlfile.Options) *File {
	return &File{
		Config: yamlfile.New(opts),
		path:   path,
		log:    log,
		now:    time.Now,
	}
}

// FilePath returns path of the config file
func (f *File) FilePath() string {
	return f.path
}

// WithVersion enables version tracking, storing target <version> at <key> with <comment> written above it.
//
// Empty <key> means DefaultVersionKey, nil <comment> means DefaultVersionComment. Panics if <version> is negative or
// not above versions of registered upgrade steps.
func (f *File) WithVersion(key string, version int, comment func() string) *File {
	if version < 0 {
		panic(errors.AssertionFailedf("Config version should not be negative, got %v", version))
	}
	key = lo.Ternary(key == "", DefaultVersionKey, key)
	if comment == nil {
		comment = func() string { return DefaultVersionComment }
	}
	if f.version != nil {
		f.Unset(f.version.key)
	}
	f.version = &versionEntry{key: key, target: version, comment: comment}
	f.checkSteps()
	f.Set(key, version)
	return f
}

// Version returns version stored in the config and true if version tracking is enabled
func (f *File) Version() (int, bool) {
	if f.version == nil {
		return 0, false
	}
	return storedVersion(f.Config, f.version.key), true
}

// CreateEntry registers entry at <key> with <def> default value, setting the default if the key has no value.
//
// Panics if entry for <key> already exists.
func (f *File) CreateEntry(key string, def any) *Entry {
	if _, ok := f.Entry(key); ok {
		panic(errors.AssertionFailedf("Entry already exists for key %q", key))
	}
	e := &Entry{file: f, key: key, def: def, steps: make(map[int]upgradeStep)}
	f.entries = append(f.entries, e)
	if !f.Has(key) && def != nil {
		f.Set(key, def)
	}
	return e
}

// Entry returns registered entry at <key> and true if it exists
func (f *File) Entry(key string) (*Entry, bool) {
	return lo.Find(f.entries, func(e *Entry) bool {
		return e.key == key
	})
}

// Entries returns registered entries in order of registration
func (f *File) Entries() []*Entry {
	return slices.Clone(f.entries)
}

// Init creates config file with it's parent directories if it does not exist, loads and saves it
func (f *File) Init() error {
	f.log.Infof("Reading config %v", f.path)
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.Wrap(err, "Create config directory")
	}
	if !file.Exists(f.path) {
		f.log.Infof("Config file not found, creating a new one at %v", f.path)
		if err := os.WriteFile(f.path, nil, 0644); err != nil {
			return errors.Wrap(err, "Create config file")
		}
	}
	if err := f.Load(); err != nil {
		return err
	}
	return f.Save()
}

// Load reads the config file, upgrading it to the target version and setting defaults of missing entries.
//
// Missing file is not an error, the config keeps it's current values. Can return errors marked as ErrVersionAhead,
// ErrBackup or yamlfile.ErrInvalidConfig.
func (f *File) Load() error {
	r, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.log.Debugf("Config %v does not exist, skipping load", f.path)
			return nil
		}
		return errors.Wrap(err, "Open config")
	}
	defer r.Close()
	return f.LoadReader(r)
}

// LoadReader reads config from <r>, upgrading it to the target version and setting defaults of missing entries.
//
// Config is left untouched on error.
func (f *File) LoadReader(r io.Reader) error {
	next := yamlfile.New(f.Options())
	if err := next.Load(r); err != nil {
		return errors.Wrapf(err, "Load config %v", f.path)
	}
	if err := f.upgrade(next); err != nil {
		return err
	}
	f.Config = next
	for _, e := range f.entries {
		if !e.Has() && e.def != nil {
			f.Set(e.key, e.def)
		}
	}
	return nil
}

// Save writes config to it's file, creating parent directories if needed
func (f *File) Save() error {
	f.applyComments()
	if err := f.SaveFile(f.path); err != nil {
		return errors.Wrapf(err, "Save config %v", f.path)
	}
	return nil
}

// Write writes config to <w>
func (f *File) Write(w io.Writer) error {
	f.applyComments()
	return f.Config.Save(w)
}

// applyComments sets comments of the version key and entries
func (f *File) applyComments() {
	if f.version != nil && f.Has(f.version.key) {
		f.SetComment(f.version.key, f.version.comment(), comments.Block)
	}
	for _, e := range f.entries {
		if e.comment != nil && e.Has() {
			f.SetComment(e.key, e.comment(), comments.Block)
		}
	}
}
