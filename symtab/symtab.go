// Package symtab provides name tables used to resolve identifiers
// that are not builtin scalars.
package symtab

import (
	"sort"

	"github.com/wippyai/zdef/types"
)

// Resolver looks up a named descriptor.
type Resolver interface {
	Lookup(name string) (*types.Descriptor, bool)
}

// Symbol is one named entry.
type Symbol struct {
	Desc *types.Descriptor
	Name string
}

// Table binds names in one flat scope layered over an optional parent
// resolver. Local bindings shadow the parent.
type Table struct {
	parent Resolver
	tab    map[string]*types.Descriptor
}

// New creates an empty table.
func New() *Table {
	return NewWithParent(nil)
}

// NewWithParent creates a table layered over parent.
func NewWithParent(parent Resolver) *Table {
	return &Table{
		parent: parent,
		tab:    make(map[string]*types.Descriptor),
	}
}

// Lookup implements Resolver.
func (t *Table) Lookup(name string) (*types.Descriptor, bool) {
	if d, ok := t.tab[name]; ok {
		return d, true
	}
	if t.parent != nil {
		return t.parent.Lookup(name)
	}
	return nil, false
}

// Define binds name, replacing any earlier local binding.
func (t *Table) Define(name string, d *types.Descriptor) {
	t.tab[name] = d
}

// Len returns the number of local bindings.
func (t *Table) Len() int {
	return len(t.tab)
}

// Symbols returns the local entries sorted by name.
func (t *Table) Symbols() []Symbol {
	res := make([]Symbol, 0, len(t.tab))
	for k, v := range t.tab {
		res = append(res, Symbol{Name: k, Desc: v})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Map is a fixed Resolver backed by a plain map.
type Map map[string]*types.Descriptor

// Lookup implements Resolver.
func (m Map) Lookup(name string) (*types.Descriptor, bool) {
	d, ok := m[name]
	return d, ok
}
