package cfg

import (
	"flight_cfg/yamlfile"

	"github.com/cockroachdb/errors"
)

// Converter returns value of an entry in the next config version made of <value> in the previous version.
//
// <value> is nil if the key was not set.
type Converter func(value any) any

// Entry represents a registered key of the config file with default value, comment and upgrade steps
type Entry struct {
	file    *File
	key     string
	def     any
	comment func() string
	steps   map[int]upgradeStep
}

// upgradeStep represents migration of an entry from one config version to the next one
type upgradeStep struct {
	oldKey  string
	convert Converter
}

// Key returns key of the entry
func (e *Entry) Key() string {
	return e.key
}

// Default returns default value of the entry
func (e *Entry) Default() any {
	return e.def
}

// WithComment sets function returning block comment written above the entry on save
func (e *Entry) WithComment(comment func() string) *Entry {
	e.comment = comment
	return e
}

// WithUpgradeStep registers migration of the entry from config <version> to <version> + 1.
//
// <oldKey> is the key of the entry in <version>, empty if it did not change. <convert> converts the old value, nil if
// the value is kept. Panics if both are empty or if <version> is not below target version of the config.
func (e *Entry) WithUpgradeStep(version int, oldKey string, convert Converter) *Entry {
	if oldKey == "" && convert == nil {
		panic(errors.AssertionFailedf("Upgrade step of %q for version %v needs either old key or converter",
			e.key, version))
	}
	e.checkStep(version)
	e.steps[version] = upgradeStep{oldKey: oldKey, convert: convert}
	return e
}

// checkStep panics if upgrade step from <version> would never run because it is not below target version
func (e *Entry) checkStep(version int) {
	if v := e.file.version; v != nil && version >= v.target {
		panic(errors.AssertionFailedf("Upgrade step of %q from version %v is not below target version %v",
			e.key, version, v.target))
	}
}

// Has returns true if the entry has value in the config
func (e *Entry) Has() bool {
	return e.file.Has(e.key)
}

// Get returns value of the entry or nil if it is not set
func (e *Entry) Get() any {
	v, _ := e.file.Get(e.key)
	return v
}

// GetOr returns value of the entry or <fallback> if it is not set
func (e *Entry) GetOr(fallback any) any {
	if v, ok := e.file.Get(e.key); ok && v != nil {
		return v
	}
	return fallback
}

// Set sets <value> of the entry. Nil <value> removes it.
func (e *Entry) Set(value any) {
	e.file.Set(e.key, value)
}

// String returns value of the entry as string or empty string if it is not a scalar
func (e *Entry) String() string {
	return e.StringOr("")
}

// StringOr returns value of the entry as string or <fallback> if it is not a scalar
func (e *Entry) StringOr(fallback string) string {
	return valueOr(e, yamlfile.AsString, fallback)
}

// Int returns value of the entry as int, truncating fractional part, or 0 if it is not a number
func (e *Entry) Int() int {
	return e.IntOr(0)
}

// IntOr returns value of the entry as int, truncating fractional part, or <fallback> if it is not a number
func (e *Entry) IntOr(fallback int) int {
	f, ok := yamlfile.AsFloat(e.Get())
	if !ok {
		return fallback
	}
	return int(f)
}

// Float returns value of the entry as float64 or 0 if it is not a number
func (e *Entry) Float() float64 {
	return e.FloatOr(0)
}

// FloatOr returns value of the entry as float64 or <fallback> if it is not a number
func (e *Entry) FloatOr(fallback float64) float64 {
	return valueOr(e, yamlfile.AsFloat, fallback)
}

// Bool returns value of the entry as bool or false if it is not a boolean
func (e *Entry) Bool() bool {
	return e.BoolOr(false)
}

// BoolOr returns value of the entry as bool or <fallback> if it is not a boolean
func (e *Entry) BoolOr(fallback bool) bool {
	return valueOr(e, yamlfile.AsBool, fallback)
}

// StringList returns value of the entry as list of strings or nil if it is not a list of scalars
func (e *Entry) StringList() []string {
	return e.StringListOr(nil)
}

// StringListOr returns value of the entry as list of strings or <fallback> if it is not a list of scalars
func (e *Entry) StringListOr(fallback []string) []string {
	return valueOr(e, yamlfile.AsStringList, fallback)
}

// IntList returns value of the entry as list of ints or nil if it is not a list of whole numbers
func (e *Entry) IntList() []int {
	return e.IntListOr(nil)
}

// IntListOr returns value of the entry as list of ints or <fallback> if it is not a list of whole numbers
func (e *Entry) IntListOr(fallback []int) []int {
	return valueOr(e, yamlfile.AsIntList, fallback)
}

// valueOr returns value of entry <e> converted by <conv> or <fallback> if conversion fails
func valueOr[T any](e *Entry, conv func(any) (T, bool), fallback T) T {
	if v, ok := conv(e.Get()); ok {
		return v
	}
	return fallback
}
