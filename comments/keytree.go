package comments

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Node represents one YAML key or list element in the KeyTree.
//
// Node identity is defined by it's parent, name and element index, never by the name alone.
type Node struct {
	parent    *Node
	children  []*Node
	name      string
	element   bool
	index     int
	indent    int
	isList    bool
	listSize  int
	openValue bool // Key line has no inline value, so a list may follow at the same indentation

	comment     string
	sideComment string
	hasComment  bool
	hasSide     bool
	padded      bool // Block comment starts with a blank line separating it from the previous key
}

// Parent returns parent of the node or nil for the root node
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns child nodes in document order
func (n *Node) Children() []*Node {
	return n.children
}

// Name returns key name of the node. List elements have empty name.
func (n *Node) Name() string {
	return n.name
}

// Indent returns indentation level of the node in columns. Root node has indentation of -1.
func (n *Node) Indent() int {
	return n.indent
}

// ElementIndex returns index of the node in it's parent list and true if the node is a list element
func (n *Node) ElementIndex() (int, bool) {
	return n.index, n.element
}

// IsList returns true if the node holds a list
func (n *Node) IsList() bool {
	return n.isList
}

// ListSize returns amount of elements known for the list node
func (n *Node) ListSize() int {
	return n.listSize
}

// SetList marks the node as a list with <size> elements
func (n *Node) SetList(size int) {
	n.isList = true
	n.listSize = max(n.listSize, size)
}

// IsRoot returns true for the synthetic root node
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsFirstNode returns true if the node is the first top level key of the document
func (n *Node) IsFirstNode() bool {
	if n.parent == nil || n.parent.parent != nil {
		return false
	}
	first, ok := lo.First(n.parent.children)
	return ok && first == n
}

// Comment returns raw comment of <typ> type and true if it is set
func (n *Node) Comment(typ Type) (string, bool) {
	if typ == Side {
		return n.sideComment, n.hasSide
	}
	return n.comment, n.hasComment
}

// SetComment sets raw comment of <typ> type. Empty <raw> removes the comment.
func (n *Node) SetComment(raw string, typ Type) {
	n.set(raw, typ, raw != "")
}

// set sets raw comment of <typ> type. Blank line read from the document is stored as empty <raw> with <present> flag.
func (n *Node) set(raw string, typ Type, present bool) {
	if !present {
		raw = ""
	}
	if typ == Side {
		n.sideComment, n.hasSide = raw, present
	} else {
		n.comment, n.hasComment, n.padded = raw, present, false
	}
}

// HasComments returns true if the node has block or side comment
func (n *Node) HasComments() bool {
	return n.hasComment || n.hasSide
}

// Child returns the first child key with <name> or nil if there is no such key
func (n *Node) Child(name string) *Node {
	child, _ := lo.Find(n.children, func(c *Node) bool {
		return !c.element && c.name == name
	})
	return child
}

// Element returns list element with <index> or nil if there is no such element
func (n *Node) Element(index int) *Node {
	child, _ := lo.Find(n.children, func(c *Node) bool {
		return c.element && c.index == index
	})
	return child
}

// Path returns path of the node with keys joined by <sep> and list elements formatted as "[index]"
func (n *Node) Path(sep string) string {
	var sb strings.Builder
	for i, seg := range n.segments() {
		if seg.element {
			sb.WriteString("[" + strconv.Itoa(seg.index) + "]")
			continue
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(seg.name)
	}
	return sb.String()
}

// add returns existing child key with <key> name or a new one.
//
// If <priority> is true, always creates a new child.
func (n *Node) add(indent int, key string, priority bool) *Node {
	if !priority {
		if child := n.Child(key); child != nil {
			child.indent = indent
			return child
		}
	}
	child := &Node{parent: n, name: key, indent: indent}
	n.children = append(n.children, child)
	return child
}

// addElement returns existing list element with <index> or a new one
func (n *Node) addElement(indent, index int) *Node {
	n.SetList(index + 1)
	if child := n.Element(index); child != nil {
		child.indent = indent
		return child
	}
	child := &Node{parent: n, element: true, index: index, indent: indent}
	n.children = append(n.children, child)
	return child
}

// segments returns path of the node from the root
func (n *Node) segments() []segment {
	var out []segment
	for cur := n; cur.parent != nil; cur = cur.parent {
		out = append(out, segment{name: cur.name, index: cur.index, element: cur.element})
	}
	return lo.Reverse(out)
}

// segment represents one step of the path: key name or list element index
type segment struct {
	name    string
	index   int
	element bool
}

// indexRx represents regex matching list element index at the end of a path key, like "list[1]"
var indexRx = regexp.MustCompile(`\[(\d+)\]$`)

// splitPath returns segments of <path> split by <sep>
func splitPath(path, sep string) []segment {
	if path == "" {
		return nil
	}
	parts := []string{path}
	if sep != "" {
		parts = strings.Split(path, sep)
	}
	var out []segment
	for _, part := range parts {
		var indexes []segment
		for {
			match := indexRx.FindStringSubmatchIndex(part)
			if match == nil {
				break
			}
			index, _ := strconv.Atoi(part[match[2]:match[3]])
			indexes = append(indexes, segment{index: index, element: true})
			part = part[:match[0]]
		}
		if part != "" || len(indexes) == 0 {
			out = append(out, segment{name: part})
		}
		out = append(out, lo.Reverse(indexes)...)
	}
	return out
}

// KeyTree represents tree of YAML keys ordered by their position in the document
type KeyTree struct {
	opts Options
	root *Node
	last *Node
}

// NewKeyTree returns empty key tree
func NewKeyTree(opts Options) *KeyTree {
	return &KeyTree{opts: opts, root: &Node{indent: -1}}
}

// Options returns options of the tree
func (t *KeyTree) Options() Options {
	return t.opts
}

// SetHeader sets clean <header> comment written at the top of the document
func (t *KeyTree) SetHeader(header string) {
	t.opts.Header = header
}

// Root returns the synthetic root node. It's block comment is the document footer.
func (t *KeyTree) Root() *Node {
	return t.root
}

// Last returns the most recently added node or nil
func (t *KeyTree) Last() *Node {
	return t.last
}

// Add returns node for <key> at <indent> level.
//
// Parent is the nearest node, walking up from the most recently added one, with indentation strictly less than
// <indent>. If no such node exist, the root becomes the parent.
//
// If <priority> is true, new node is created even if the parent already has a child with the same name.
func (t *KeyTree) Add(indent int, key string, priority bool) *Node {
	node := t.FindParent(indent).add(indent, key, priority)
	t.last = node
	return node
}

// AddElement returns new list element node for a "- " item at <indent> column.
//
// Owner list is the nearest node with indentation less than <indent> or a key with no inline value at the same
// indentation (compact lists, "key:\n- item").
func (t *KeyTree) AddElement(indent int) *Node {
	owner := t.root
	for n := t.last; n != nil && n.parent != nil; n = n.parent {
		if n.indent < indent || (n.indent == indent && !n.element && n.openValue) {
			owner = n
			break
		}
	}
	node := owner.addElement(indent, owner.listSize)
	t.last = node
	return node
}

// FindParent returns the nearest ancestor of the most recently added node with indentation less than <indent>
func (t *KeyTree) FindParent(indent int) *Node {
	n := t.last
	if n == nil {
		return t.root
	}
	for n.parent != nil && n.indent >= indent {
		n = n.parent
	}
	return n
}

// Get returns node by <path> or nil if there is no such node.
//
// Path keys are split by the separator from options, list elements are addressed as "key[index]".
func (t *KeyTree) Get(path string) *Node {
	return t.lookup(splitPath(path, t.opts.Separator))
}

// GetOrAdd returns node by <path>, creating missing nodes along the way
func (t *KeyTree) GetOrAdd(path string) *Node {
	n := t.root
	for _, seg := range splitPath(path, t.opts.Separator) {
		if seg.element {
			n = n.addElement(n.indent+t.opts.IndentList, seg.index)
			continue
		}
		indent := 0
		switch {
		case n.parent == nil:
		case n.element:
			indent = n.indent + 2 // "- " prefix
		default:
			indent = n.indent + t.opts.Indent
		}
		n = n.add(indent, seg.name, false)
	}
	return n
}

// Walk calls <fn> for every node except the root in document order until <fn> returns false
func (t *KeyTree) Walk(fn func(n *Node) bool) {
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		for _, child := range n.children {
			if !fn(child) || !walk(child) {
				return false
			}
		}
		return true
	}
	walk(t.root)
}

// Clear removes all nodes and comments
func (t *KeyTree) Clear() {
	t.root = &Node{indent: -1}
	t.last = nil
}

// lookup returns node by path <segs> or nil if there is no such node
func (t *KeyTree) lookup(segs []segment) *Node {
	n := t.root
	for _, seg := range segs {
		if seg.element {
			n = n.Element(seg.index)
		} else {
			n = n.Child(seg.name)
		}
		if n == nil {
			return nil
		}
	}
	return n
}
