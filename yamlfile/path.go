package yamlfile

import (
	"flight_cfg/comments"
	"flight_cfg/util/parse"
)

// Path represents a key of the configuration document, used to set it's value and comments in one chain
type Path struct {
	cfg  *Config
	path string
}

// Path returns wrapper of key at <path>
func (c *Config) Path(path string) *Path {
	return &Path{cfg: c, path: path}
}

// String is used to satisfy fmt.Stringer interface
func (p *Path) String() string {
	return p.path
}

// Get returns value at the path and true if it exists
func (p *Path) Get() (any, bool) {
	return p.cfg.Get(p.path)
}

// Set sets <value> at the path. Nil <value> removes the value.
func (p *Path) Set(value any) *Path {
	p.cfg.Set(p.path, value)
	return p
}

// SetDefault sets <value> at the path if there is no value yet
func (p *Path) SetDefault(value any) *Path {
	if !p.cfg.Has(p.path) {
		p.cfg.Set(p.path, value)
	}
	return p
}

// Comment sets block comment of the key
func (p *Path) Comment(comment string) *Path {
	p.cfg.SetComment(p.path, comment, comments.Block)
	return p
}

// CommentSide sets side comment of the key
func (p *Path) CommentSide(comment string) *Path {
	p.cfg.SetComment(p.path, comment, comments.Side)
	return p
}

// CommentWithFormat sets comment of <typ> type using <format> instead of the default one
func (p *Path) CommentWithFormat(comment string, typ comments.Type, format comments.Format) *Path {
	p.cfg.SetCommentWithFormat(p.path, comment, typ, format)
	return p
}

// BlankLine puts a blank line above the key
func (p *Path) BlankLine() *Path {
	p.cfg.SetBlankLine(p.path)
	return p
}

// Child returns wrapper of <key> nested in the path
func (p *Path) Child(key string) *Path {
	return p.cfg.Path(parse.JoinPath(p.path, key, p.cfg.opts.PathSeparator))
}

// Parent returns wrapper of the parent key or nil for top level keys
func (p *Path) Parent() *Path {
	parent := parse.ParentPath(p.path, p.cfg.opts.PathSeparator)
	if parent == "" {
		return nil
	}
	return p.cfg.Path(parent)
}
