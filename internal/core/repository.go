package core

import "depsolve/internal/types"

// Repository is an ordered, immutable-after-load container of Packages,
// indexed by both id and name. It never mutates once populated.
type Repository struct {
	order  []string
	byID   map[string]types.Package
	byName map[string][]string
}

// NewRepository builds a Repository from packages, preserving their
// insertion order. Packages with a duplicate id (same content hash)
// deduplicate silently, keeping the first occurrence.
func NewRepository(packages []types.Package) *Repository {
	r := &Repository{
		byID:   make(map[string]types.Package, len(packages)),
		byName: make(map[string][]string),
	}
	for _, p := range packages {
		r.add(p)
	}
	return r
}

func (r *Repository) add(p types.Package) {
	if _, exists := r.byID[p.ID()]; exists {
		return
	}
	r.byID[p.ID()] = p
	r.order = append(r.order, p.ID())
	r.byName[p.Name()] = append(r.byName[p.Name()], p.ID())
}

// Packages returns every package in this repository in insertion order.
func (r *Repository) Packages() []types.Package {
	out := make([]types.Package, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ByID looks up a package by id.
func (r *Repository) ByID(id string) (types.Package, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// ByName returns the ids of every package with the given name, in
// insertion order.
func (r *Repository) ByName(name string) []string {
	return r.byName[name]
}
