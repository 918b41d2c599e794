package registry

import "github.com/wippyai/zdef/types"

// Registry holds canonical host types keyed by their structural rendering
type Registry struct {
	entries map[string]*types.HostType
	lookups uint64
	hits    uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*types.HostType),
	}
}

// Intern returns the canonical host type structurally equal to h.
// h itself is never modified; a canonical copy is stored on first sight.
func (r *Registry) Intern(h *types.HostType) *types.HostType {
	if h == nil {
		return nil
	}
	r.lookups++

	canon := &types.HostType{Kind: h.Kind}
	if len(h.Fields) > 0 {
		canon.Fields = r.internFields(h.Fields)
	}
	if len(h.Params) > 0 {
		canon.Params = r.internFields(h.Params)
	}
	if h.Return != nil {
		canon.Return = r.Intern(h.Return)
	}

	key := canon.String()
	if existing, ok := r.entries[key]; ok {
		r.hits++
		return existing
	}
	r.entries[key] = canon
	return canon
}

func (r *Registry) internFields(fields []types.HostField) []types.HostField {
	out := make([]types.HostField, len(fields))
	for i, f := range fields {
		out[i] = types.HostField{Name: f.Name, Type: r.Intern(f.Type)}
	}
	return out
}

// Scalar returns the canonical host type of a scalar kind.
func (r *Registry) Scalar(kind types.HostKind) *types.HostType {
	return r.Intern(&types.HostType{Kind: kind})
}

// Contains reports whether h is a canonical entry of this registry.
func (r *Registry) Contains(h *types.HostType) bool {
	if h == nil {
		return false
	}
	existing, ok := r.entries[h.String()]
	return ok && existing == h
}

// Len returns the number of distinct host types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Stats returns total intern calls and how many found an existing entry.
func (r *Registry) Stats() (lookups, hits uint64) {
	return r.lookups, r.hits
}

// Reset drops all entries. Previously returned handles stay valid but are
// no longer canonical.
func (r *Registry) Reset() {
	r.entries = make(map[string]*types.HostType)
	r.lookups = 0
	r.hits = 0
}
