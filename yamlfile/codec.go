package yamlfile

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	nullTag  = "!!null"
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	mergeTag = "!!merge"
)

// decode returns top level section of YAML document in <data>.
//
// Returns error marked as ErrInvalidConfig if <data> is not valid YAML or it's top level is not a mapping.
func decode(data []byte) (*Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "Decode config"), ErrInvalidConfig)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewSection(), nil
	}
	top := resolve(doc.Content[0])
	switch {
	case top.Kind == yaml.MappingNode:
		return decodeSection(top)
	case top.Kind == yaml.ScalarNode && top.Tag == nullTag:
		return NewSection(), nil
	}
	err := errors.Newf("Top level of config at line %v is %v, expected mapping", top.Line, kindName(top.Kind))
	return nil, errors.Mark(err, ErrInvalidConfig)
}

// decodeSection returns section made of mapping <n>
func decodeSection(n *yaml.Node) (*Section, error) {
	s := NewSection()
	s.style = n.Style & yaml.FlowStyle
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if isMerge(key) {
			if err := merge(s, value); err != nil {
				return nil, err
			}
			continue
		}
		decoded, err := decodeValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "Decode value of %v", key.Value)
		}
		e := &entry{
			value:    decoded,
			style:    resolve(value).Style,
			origin:   newOrigin(value, decoded),
			keyTag:   key.Tag,
			keyStyle: key.Style,
		}
		s.put(key.Value, e)
	}
	return s, nil
}

// merge adds keys of mapping or sequence of mappings <n> which <s> does not have yet
func merge(s *Section, n *yaml.Node) error {
	n = resolve(n)
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = lo.Map(n.Content, func(item *yaml.Node, _ int) *yaml.Node { return resolve(item) })
	}
	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return errors.Mark(errors.Newf("Merge key at line %v expects mapping", src.Line), ErrInvalidConfig)
		}
		merged, err := decodeSection(src)
		if err != nil {
			return err
		}
		for _, key := range merged.keys {
			if !s.Has(key) {
				s.put(key, merged.entries[key])
			}
		}
	}
	return nil
}

// decodeValue returns Go value of node <n>
func decodeValue(n *yaml.Node) (any, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		return decodeSection(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var out any
		if err := n.Decode(&out); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "Decode scalar at line %v", n.Line), ErrInvalidConfig)
		}
		return out, nil
	}
}

// newOrigin returns origin of scalar or sequence node <n> decoded to <value>. Returns nil for mappings, as sections
// keep origins of their own values.
func newOrigin(n *yaml.Node, value any) *origin {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return &origin{
			value: value,
			node:  &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value, Style: n.Style},
		}
	case yaml.SequenceNode:
		items, _ := value.([]any)
		o := &origin{style: n.Style & yaml.FlowStyle}
		for i, item := range n.Content {
			if i >= len(items) {
				break
			}
			o.items = append(o.items, newOrigin(item, items[i]))
		}
		return o
	}
	return nil
}

// isMerge returns true if <key> node is a merge key
func isMerge(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.Value == "<<" && key.Style == 0 && (key.Tag == "" || key.Tag == mergeTag)
}

// resolve returns node <n> points to if it is an alias
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// encode returns YAML text of section <s> indented by <indent> spaces. Empty section produces empty text.
func encode(s *Section, indent int) (string, error) {
	if s.Len() == 0 {
		return "", nil
	}
	node, err := encodeSection(s)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", errors.Wrap(err, "Encode config")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "Close encoder")
	}
	return buf.String(), nil
}

// encodeSection returns mapping node made of section <s>
func encodeSection(s *Section) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: s.style}
	for _, key := range s.keys {
		e := s.entries[key]
		value, err := encodeValue(e.value, e.style, e.origin)
		if err != nil {
			return nil, errors.Wrapf(err, "Encode value of %v", key)
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: lo.Ternary(e.keyTag == "", strTag, e.keyTag), Value: key}
		keyNode.Style = e.keyStyle
		n.Content = append(n.Content, keyNode, value)
	}
	return n, nil
}

// encodeValue returns node made of <v> written with <style>.
//
// Scalars equal to the ones <o> was decoded from are written as they were in the document.
func encodeValue(v any, style yaml.Style, o *origin) (*yaml.Node, error) {
	if o != nil && o.node != nil && o.same(v) {
		n := *o.node
		return &n, nil
	}
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	case *Section:
		return encodeSection(v)
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: style & yaml.FlowStyle}
		if o != nil {
			n.Style |= o.style
		}
		for i, item := range v {
			var itemOrigin *origin
			if o != nil && i < len(o.items) {
				itemOrigin = o.items[i]
			}
			itemNode, err := encodeValue(item, 0, itemOrigin)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, itemNode)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, errors.Wrap(err, "Encode scalar")
	}
	// Quoting and block styles only keep the meaning of strings
	if n.Kind == yaml.ScalarNode && n.Tag == strTag && style != 0 {
		n.Style = style
	}
	// Whole floats are encoded like integers and would be read back as them
	switch v.(type) {
	case float32, float64:
		if n.Kind == yaml.ScalarNode && n.Tag == intTag && !strings.ContainsAny(n.Value, ".eE") {
			n.Tag, n.Value = floatTag, n.Value+".0"
		}
	}
	return n, nil
}

// kindName returns human readable name of node <kind>
func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
