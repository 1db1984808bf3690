// Package translate provides a registry of translatable messages backed by per-language YAML files
package translate

import (
	"os"
	"path/filepath"
	"strings"

	"flight_cfg/cfg"
	"flight_cfg/util/copier"
	"flight_cfg/util/replace"
	"flight_cfg/yamlfile"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Entry represents a registered message with it's default contents
type Entry struct {
	Key      string
	contents []string
}

// String returns the first line of default contents
func (e Entry) String() string {
	first, _ := lo.First(e.contents)
	return first
}

// List returns copy of default contents
func (e Entry) List() []string {
	return copier.PDeep(e.contents)
}

// Registry stores messages and language files they are translated in
type Registry struct {
	log     *logrus.Logger
	dir     string
	main    string
	opts    yamlfile.Options
	entries []Entry
	files   map[string]*cfg.File
	langs   []string
}

// NewRegistry returns registry writing language files to <dir> and using <mainLanguage> if no other language is
// requested or requested language is not registered
func NewRegistry(log *logrus.Logger, dir, mainLanguage string) *Registry {
	opts := yamlfile.DefaultOptions()
	// Message keys are plain sentences
	opts.PathSeparator = ""
	return &Registry{
		log:   log,
		dir:   dir,
		main:  mainLanguage,
		opts:  opts,
		files: make(map[string]*cfg.File),
	}
}

// MainLanguage returns code of the main language
func (r *Registry) MainLanguage() string {
	return r.main
}

// Register returns message at <key> (case insensitive) with default <contents>.
//
// The first registration of a key wins, later ones return entry with contents registered first.
func (r *Registry) Register(key string, contents ...string) Entry {
	key = strings.ToLower(key)
	if e, ok := lo.Find(r.entries, func(e Entry) bool { return e.Key == key }); ok {
		return e
	}
	e := Entry{Key: key, contents: copier.PDeep(contents)}
	r.entries = append(r.entries, e)
	return e
}

// RegisterLanguage adds language file <code>.yml to the registry
func (r *Registry) RegisterLanguage(code string) {
	if _, ok := r.files[code]; ok {
		return
	}
	r.files[code] = cfg.New(r.log, filepath.Join(r.dir, code+".yml"), r.opts)
	r.langs = append(r.langs, code)
}

// Languages returns codes of registered languages in order of registration
func (r *Registry) Languages() []string {
	return slices.Clone(r.langs)
}

// Setup creates language directory and writes every registered message missing in language files with it's default
// contents.
//
// Main language is registered if it was not.
func (r *Registry) Setup() error {
	r.RegisterLanguage(r.main)
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return errors.Wrap(err, "Create language directory")
	}
	for _, code := range r.langs {
		f := r.files[code]
		for _, e := range r.entries {
			if _, ok := f.Entry(e.Key); ok {
				continue
			}
			f.CreateEntry(e.Key, lo.Ternary[any](len(e.contents) > 1, e.contents, e.String()))
		}
		if err := f.Init(); err != nil {
			return errors.Wrapf(err, "Init language %v", code)
		}
	}
	return nil
}

// String returns message <e> in the main language with tokens replaced by <vars> given as name, value, ...
func (r *Registry) String(e Entry, vars ...any) string {
	return r.StringIn(r.main, e, vars...)
}

// StringIn returns message <e> in <lang> with tokens replaced by <vars> given as name, value, ...
func (r *Registry) StringIn(lang string, e Entry, vars ...any) string {
	content := e.String()
	if v, ok := r.lookup(lang, e.Key); ok {
		if s, ok := yamlfile.AsString(v); ok {
			content = s
		} else if list, ok := yamlfile.AsStringList(v); ok {
			content = strings.Join(list, "\n")
		}
	}
	return replace.Variables(content, vars...)
}

// List returns lines of message <e> in the main language with tokens replaced by <vars>
func (r *Registry) List(e Entry, vars ...any) []string {
	return r.ListIn(r.main, e, vars...)
}

// ListIn returns lines of message <e> in <lang> with tokens replaced by <vars>
func (r *Registry) ListIn(lang string, e Entry, vars ...any) []string {
	content := e.List()
	if v, ok := r.lookup(lang, e.Key); ok {
		if s, ok := yamlfile.AsString(v); ok {
			content = []string{s}
		} else if list, ok := yamlfile.AsStringList(v); ok {
			content = list
		}
	}
	return replace.VariablesList(content, vars...)
}

// lookup returns value of message <key> in <lang> file, falling back to the main language file
func (r *Registry) lookup(lang, key string) (any, bool) {
	for _, code := range lo.Uniq([]string{lang, r.main}) {
		if f, ok := r.files[code]; ok {
			if v, ok := f.Get(key); ok {
				return v, true
			}
		}
	}
	return nil, false
}
