package types

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Package is an immutable installable unit: a name and version, the set
// of Requirements it additionally provides (beyond its own name/version),
// and the set of Requirements it depends on. Provides/dependencies are
// stored in a canonical sorted order so that two structurally equal
// packages always hash to the same Id.
type Package struct {
	name         string
	version      Version
	provides     []Requirement
	dependencies []Requirement
	id           string
}

// NewPackage builds a Package, canonicalizing the ordering of provides
// and dependencies and deriving a stable content hash as the id.
func NewPackage(name string, version Version, provides, dependencies []Requirement) Package {
	p := Package{
		name:         name,
		version:      version,
		provides:     sortedRequirements(provides),
		dependencies: sortedRequirements(dependencies),
	}
	p.id = computePackageID(p)
	return p
}

// Name returns the package's distribution name.
func (p Package) Name() string { return p.name }

// Version returns the package's version.
func (p Package) Version() Version { return p.version }

// Provides returns the canonically ordered set of additional Requirements
// this package satisfies (its own name/version is implicitly provided and
// is not included here).
func (p Package) Provides() []Requirement { return p.provides }

// Dependencies returns the canonically ordered set of Requirements this
// package depends on.
func (p Package) Dependencies() []Requirement { return p.dependencies }

// ID returns the stable, content-derived identifier used as this
// package's SAT-variable name.
func (p Package) ID() string { return p.id }

// String renders the package as "name-version", the form used as the
// basis of its id and of the package-string grammar.
func (p Package) String() string {
	return p.name + "-" + p.version.String()
}

func sortedRequirements(reqs []Requirement) []Requirement {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].String() < out[j].String()
	})
	return out
}

func computePackageID(p Package) string {
	h := sha256.New()
	h.Write([]byte(p.name))
	h.Write([]byte{0})
	h.Write([]byte(p.version.String()))
	for _, r := range p.provides {
		h.Write([]byte{1})
		h.Write([]byte(r.String()))
	}
	for _, r := range p.dependencies {
		h.Write([]byte{2})
		h.Write([]byte(r.String()))
	}
	return p.name + "-" + p.version.String() + "-" + hex.EncodeToString(h.Sum(nil))[:12]
}

// Operation is one step of an emitted plan: installing a new package,
// removing a previously-installed one, or updating one version of a
// named package to another. Operations compare with structural equality,
// suitable for golden-file comparison.
type Operation struct {
	Kind OperationKind
	Pkg  Package
	From Package
	To   Package
}

// OperationKind tags which variant of Operation a value holds.
type OperationKind int8

const (
	// OpInstall installs Operation.Pkg.
	OpInstall OperationKind = iota
	// OpRemove removes Operation.Pkg.
	OpRemove
	// OpUpdate replaces Operation.From with Operation.To.
	OpUpdate
)

// Install builds an Install(pkg) operation.
func Install(pkg Package) Operation { return Operation{Kind: OpInstall, Pkg: pkg} }

// Remove builds a Remove(pkg) operation.
func Remove(pkg Package) Operation { return Operation{Kind: OpRemove, Pkg: pkg} }

// Update builds an Update(from, to) operation.
func Update(from, to Package) Operation { return Operation{Kind: OpUpdate, From: from, To: to} }

// Equal reports structural equality between two Operations.
func (o Operation) Equal(other Operation) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case OpInstall, OpRemove:
		return o.Pkg.ID() == other.Pkg.ID()
	case OpUpdate:
		return o.From.ID() == other.From.ID() && o.To.ID() == other.To.ID()
	default:
		return false
	}
}
