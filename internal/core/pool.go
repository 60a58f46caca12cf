package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"depsolve/internal/types"
)

// QueryMode selects which classification tiers what_provides returns.
type QueryMode int8

const (
	// ModeComposer is the default: prefer direct name matches, falling
	// back to provides-only matches when the name itself is unknown in
	// the pool.
	ModeComposer QueryMode = iota
	// ModeDirectOnly returns MATCH candidates only.
	ModeDirectOnly
	// ModeIncludeIndirect returns MATCH and MATCH_PROVIDE candidates.
	ModeIncludeIndirect
	// ModeAny returns MATCH, MATCH_PROVIDE, and MATCH_NAME candidates.
	ModeAny
)

// matchTier classifies one candidate package against a requirement.
type matchTier int8

const (
	tierNone matchTier = iota
	tierMatch
	tierMatchName
	tierMatchProvide
)

// Pool aggregates one or more Repositories into a single read-only view
// used by the clause compiler. A Pool never contains two packages with
// the same id (insertion is injective; duplicates deduplicate silently).
type Pool struct {
	byID   map[string]types.Package
	order  []string
	byName map[string][]string
}

// NewPool merges repositories into a Pool. Every package appears under
// its own name and under the name of every requirement it provides.
func NewPool(repos ...*Repository) *Pool {
	p := &Pool{
		byID:   make(map[string]types.Package),
		byName: make(map[string][]string),
	}
	for _, repo := range repos {
		for _, pkg := range repo.Packages() {
			p.add(pkg)
		}
	}
	return p
}

func (p *Pool) add(pkg types.Package) {
	if _, exists := p.byID[pkg.ID()]; exists {
		return
	}
	p.byID[pkg.ID()] = pkg
	p.order = append(p.order, pkg.ID())
	p.index(pkg.Name(), pkg.ID())
	for _, provide := range pkg.Provides() {
		p.index(provide.Name(), pkg.ID())
	}
}

func (p *Pool) index(name, id string) {
	ids := p.byName[name]
	for _, existing := range ids {
		if existing == id {
			return
		}
	}
	p.byName[name] = append(ids, id)
}

// ByID looks up a package by id, failing with MissingPackageInPool if
// absent.
func (p *Pool) ByID(id string) (types.Package, error) {
	pkg, ok := p.byID[id]
	if !ok {
		return types.Package{}, types.ErrMissingPackageInPool(id)
	}
	return pkg, nil
}

// CheckInvariants asserts the structural invariants the rest of the
// solver depends on: every indexed id is non-empty and resolves to a
// package. It does not check for an id indexed twice under one name;
// index already skips such duplicates at insertion time.
func (p *Pool) CheckInvariants(ctx context.Context) {
	for name, ids := range p.byName {
		for _, id := range ids {
			assert.NotEmpty(ctx, id, fmt.Sprintf("pool: empty id indexed under name %s", name))
			assert.NotEmpty(ctx, p.byID[id].ID(), fmt.Sprintf("pool: id %s indexed under name %s has no backing package", id, name))
		}
	}
}

// classify determines candidate's match tier against req.
func classify(candidate types.Package, req types.Requirement) matchTier {
	if candidate.Name() == req.Name() {
		selfReq, err := types.NewRequirement(req.Name(), []types.Constraint{
			{Kind: types.ConstraintEqual, Version: candidate.Version()},
		})
		if err == nil && selfReq.Matches(req) {
			return tierMatch
		}
		return tierMatchName
	}
	for _, provide := range candidate.Provides() {
		if provide.Matches(req) {
			return tierMatchProvide
		}
	}
	return tierNone
}

// WhatProvides returns the ids of every candidate package satisfying req
// under the given mode, in deterministic pool insertion order.
func (p *Pool) WhatProvides(req types.Requirement, mode QueryMode) []string {
	var match, matchName, matchProvide []string

	candidateIDs := p.candidatesFor(req.Name())
	for _, id := range candidateIDs {
		pkg := p.byID[id]
		switch classify(pkg, req) {
		case tierMatch:
			match = append(match, id)
		case tierMatchName:
			matchName = append(matchName, id)
		case tierMatchProvide:
			matchProvide = append(matchProvide, id)
		}
	}

	switch mode {
	case ModeDirectOnly:
		return match
	case ModeIncludeIndirect:
		return appendUnique(match, matchProvide)
	case ModeAny:
		return appendUnique(appendUnique(match, matchProvide), matchName)
	default: // ModeComposer
		if len(match) == 0 && len(matchName) == 0 {
			return matchProvide
		}
		return match
	}
}

// candidatesFor returns every package id indexed under name -- packages
// actually named name, plus any package that provides something named
// name (both are folded into the same byName index by add/index).
func (p *Pool) candidatesFor(name string) []string {
	ids, ok := p.byName[name]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, id := range base {
		seen[id] = true
	}
	out := base
	for _, id := range extra {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}
