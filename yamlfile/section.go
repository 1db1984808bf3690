package yamlfile

import (
	"reflect"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Section represents YAML mapping keeping it's keys in document order.
//
// Values are *Section for mappings, []any for sequences and Go scalar types (string, int, float64, bool, nil) for
// scalars.
type Section struct {
	keys    []string
	entries map[string]*entry
	style   yaml.Style
}

// entry represents value of a section key
type entry struct {
	value    any
	style    yaml.Style // Quoting style of scalars, flow style of sequences
	origin   *origin    // Value as it is written in the document
	keyTag   string
	keyStyle yaml.Style
}

// origin represents scalar or sequence as it is written in the document
type origin struct {
	value any        // Decoded scalar
	node  *yaml.Node // Scalar node
	style yaml.Style // Flow style of sequence
	items []*origin  // Origins of sequence items
}

// same returns true if <v> equals the scalar <o> was decoded from
func (o *origin) same(v any) bool {
	if v == nil || o.value == nil {
		return v == nil && o.value == nil
	}
	if reflect.TypeOf(v) != reflect.TypeOf(o.value) || !reflect.TypeOf(v).Comparable() {
		return false
	}
	return v == o.value
}

// NewSection returns empty section
func NewSection() *Section {
	return &Section{entries: make(map[string]*entry)}
}

// Keys returns keys of the section in order
func (s *Section) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns amount of keys in the section
func (s *Section) Len() int {
	return len(s.keys)
}

// Has returns true if section has <key>
func (s *Section) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Get returns value of <key> and true if section has the key
func (s *Section) Get(key string) (any, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Style returns style of the <key> value
func (s *Section) Style(key string) yaml.Style {
	if e, ok := s.entries[key]; ok {
		return e.style
	}
	return 0
}

// Set sets <value> of <key>, appending the key if it is new. Nil <value> removes the key.
//
// Maps with string keys are converted to sections with sorted keys, slices and arrays to []any.
func (s *Section) Set(key string, value any) {
	if value == nil {
		s.Delete(key)
		return
	}
	s.SetWithStyle(key, value, 0)
}

// SetWithStyle sets <value> of <key> written with <style>, like yaml.DoubleQuotedStyle or yaml.FlowStyle.
//
// Nil <value> is written as null. Without <style>, scalars left equal to the replaced ones are written as they were.
func (s *Section) SetWithStyle(key string, value any, style yaml.Style) {
	value = normalize(value)
	if sub, ok := value.(*Section); ok && style&yaml.FlowStyle != 0 {
		sub.style = yaml.FlowStyle
	}
	e := &entry{value: value, style: style}
	if old, ok := s.entries[key]; ok && style == 0 {
		e.origin = old.origin
	}
	s.put(key, e)
}

// Delete removes <key> from the section
func (s *Section) Delete(key string) {
	if !s.Has(key) {
		return
	}
	delete(s.entries, key)
	s.keys = lo.Without(s.keys, key)
}

// Clone returns deep copy of the section
func (s *Section) Clone() *Section {
	out := NewSection()
	out.style = s.style
	for _, key := range s.keys {
		e := *s.entries[key]
		e.value = cloneValue(e.value)
		out.put(key, &e)
	}
	return out
}

// prune removes empty sections and returns true if the section became empty
func (s *Section) prune() bool {
	for _, key := range s.Keys() {
		if sub, ok := s.entries[key].value.(*Section); ok && sub.prune() {
			s.Delete(key)
		}
	}
	return s.Len() == 0
}

// put sets <e> entry of <key>, keeping the way an existing key is written
func (s *Section) put(key string, e *entry) {
	old, ok := s.entries[key]
	if !ok {
		s.keys = append(s.keys, key)
	} else if e.keyTag == "" {
		e.keyTag, e.keyStyle = old.keyTag, old.keyStyle
	}
	s.entries[key] = e
}

// cloneValue returns deep copy of <v>
func cloneValue(v any) any {
	switch v := v.(type) {
	case *Section:
		return v.Clone()
	case []any:
		return lo.Map(v, func(item any, _ int) any {
			return cloneValue(item)
		})
	default:
		return v
	}
}

// normalize converts slices and arrays to []any and maps with string keys to sections
func normalize(v any) any {
	switch v.(type) {
	case nil, *Section, string, []byte:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		s := NewSection()
		for _, key := range keys {
			s.SetWithStyle(key.String(), rv.MapIndex(key).Interface(), 0)
		}
		return s
	}
	return v
}
