package core

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Scope maps names to values and, in parallel, to their declared type tags.
// Values and functions share one namespace. A child scope reads through to
// its parent and keeps its own writes, so dropping it restores the parent
// exactly.
type Scope struct {
	parent *Scope
	values map[string]Value
	types  map[string]string

	// forward sends Define to the parent once the scope's own bindings
	// are in place.
	forward bool
}

func NewScope() *Scope {
	return &Scope{
		values: make(map[string]Value),
		types:  make(map[string]string),
	}
}

func (s *Scope) Child() *Scope {
	child := NewScope()
	child.parent = s
	return child
}

func (s *Scope) Get(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind returns an overlay holding only name. Later definitions pass through
// to s, so the overlay never keeps anything but the one binding.
func (s *Scope) Bind(name, tag string, v Value) *Scope {
	bound := s.Child()
	bound.Define(name, tag, v)
	bound.forward = true
	return bound
}

// TypeOf returns the tag name was bound with. Unannotated bindings have an
// empty tag.
func (s *Scope) TypeOf(name string) (string, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			return scope.types[name], true
		}
	}
	return "", false
}

// Define binds name in this scope, overwriting any earlier binding of
// either kind.
func (s *Scope) Define(name, tag string, v Value) {
	if s.forward {
		delete(s.values, name)
		delete(s.types, name)
		s.parent.Define(name, tag, v)
		return
	}

	s.values[name] = v
	s.types[name] = tag
}

// Names lists every name visible from s, sorted.
func (s *Scope) Names() []string {
	seen := map[string]struct{}{}
	for scope := s; scope != nil; scope = scope.parent {
		for _, name := range maps.Keys(scope.values) {
			seen[name] = struct{}{}
		}
	}

	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// Len is the number of bindings held directly by s.
func (s *Scope) Len() int {
	return len(s.values)
}

type module struct {
	name   string
	source string
}

// Context carries the configuration and registered source modules shared by
// the interpreters of one embedding.
type Context struct {
	Config  Config
	Modules []module
}

func NewContext(config Config) Context {
	return Context{
		Config:  config,
		Modules: []module{},
	}
}

// LoadModule registers source under name, replacing an earlier module of the
// same name.
func (c *Context) LoadModule(name, source string) {
	for i, m := range c.Modules {
		if m.name == name {
			c.Modules[i].source = source
			return
		}
	}

	c.Modules = append(c.Modules, module{name: name, source: source})
}

func (c *Context) Module(name string) (string, bool) {
	for _, m := range c.Modules {
		if m.name == name {
			return m.source, true
		}
	}
	return "", false
}

func (c *Context) ModuleNames() []string {
	names := make([]string, len(c.Modules))
	for i, m := range c.Modules {
		names[i] = m.name
	}
	return names
}
