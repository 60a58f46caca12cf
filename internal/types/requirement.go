package types

import (
	"fmt"
	"strings"
)

// ConstraintKind tags one atomic constraint parsed out of a requirement
// string: an exact pin, or a lower/upper bound.
type ConstraintKind int8

const (
	// ConstraintEqual pins a requirement to exactly one Version.
	ConstraintEqual ConstraintKind = iota
	// ConstraintGEQ lower-bounds a requirement (inclusive).
	ConstraintGEQ
	// ConstraintLEQ upper-bounds a requirement (inclusive).
	ConstraintLEQ
)

// Constraint is one atomic clause of a requirement string, e.g. ">= 1.2.0".
type Constraint struct {
	Kind    ConstraintKind
	Version Version
}

// Requirement is a (name, interval) predicate over Versions, with an
// optional pinned equality. The zero value is not valid; build one with
// NewRequirement, or parse one with core.ParseRequirementList.
type Requirement struct {
	name          string
	minBound      Version
	maxBound      Version
	pinned        bool
	pinValue      Version
	unsatisfiable bool
}

// Name returns the distribution name this requirement constrains.
func (r Requirement) Name() string { return r.name }

// Pinned reports whether r is pinned to a single exact Version, and if so
// returns it.
func (r Requirement) Pinned() (Version, bool) { return r.pinValue, r.pinned }

// Unsatisfiable reports whether r's bounds admit no Version at all
// (min_bound > max_bound, or two conflicting Equal constraints).
func (r Requirement) Unsatisfiable() bool { return r.unsatisfiable }

// Bounds returns the normalized inclusive [min, max] interval.
func (r Requirement) Bounds() (min, max Version) { return r.minBound, r.maxBound }

// Any reports whether r admits every Version (no constraints supplied).
func (r Requirement) Any() bool {
	return !r.pinned && !r.unsatisfiable && r.minBound.Equal(MinVersion) && r.maxBound.Equal(MaxVersion)
}

// NewRequirement builds a Requirement for name from its atomic constraints:
//
//	min_bound = max(v for GEQ(v)), default MinVersion
//	max_bound = min(v for LEQ(v)), default MaxVersion
//	exactly one Equal pins both bounds to that value
//	two distinct Equal constraints make the requirement unsatisfiable
//	min_bound > max_bound also makes it unsatisfiable
//
// This constructor is the only place a Requirement's bounds are computed.
func NewRequirement(name string, constraints []Constraint) (Requirement, error) {
	if name == "" {
		return Requirement{}, ErrInvalidRequirement(name, "empty distribution name")
	}

	min := MinVersion
	max := MaxVersion
	var pinned bool
	var pinValue Version
	var conflictingPins bool

	for _, c := range constraints {
		switch c.Kind {
		case ConstraintGEQ:
			if c.Version.Greater(min) {
				min = c.Version
			}
		case ConstraintLEQ:
			if c.Version.Less(max) {
				max = c.Version
			}
		case ConstraintEqual:
			if pinned && !c.Version.Equal(pinValue) {
				conflictingPins = true
			}
			pinned = true
			pinValue = c.Version
		default:
			return Requirement{}, ErrInvalidRequirement(name, fmt.Sprintf("unknown constraint kind %d", c.Kind))
		}
	}

	if pinned {
		min = pinValue
		max = pinValue
	}

	unsatisfiable := conflictingPins || min.Greater(max)

	return Requirement{
		name:          name,
		minBound:      min,
		maxBound:      max,
		pinned:        pinned,
		pinValue:      pinValue,
		unsatisfiable: unsatisfiable,
	}, nil
}

// Matches reports whether r and other describe overlapping sets of
// versions of the same name. Matching is symmetric: r.Matches(other) ==
// other.Matches(r). An unsatisfiable requirement never matches anything.
func (r Requirement) Matches(other Requirement) bool {
	if r.name != other.name {
		return false
	}
	if r.unsatisfiable || other.unsatisfiable {
		return false
	}
	lo := r.minBound
	if other.minBound.Greater(lo) {
		lo = other.minBound
	}
	hi := r.maxBound
	if other.maxBound.Less(hi) {
		hi = other.maxBound
	}
	return lo.LessOrEqual(hi)
}

// Equal implements the normalized equality defined in the spec: two
// Requirements are equal iff their (name, min_bound, max_bound, pinned,
// unsatisfiable-flag) tuples match.
func (r Requirement) Equal(other Requirement) bool {
	if r.name != other.name || r.pinned != other.pinned || r.unsatisfiable != other.unsatisfiable {
		return false
	}
	if r.unsatisfiable {
		return true
	}
	if r.pinned {
		return r.pinValue.Equal(other.pinValue)
	}
	return r.minBound.Equal(other.minBound) && r.maxBound.Equal(other.maxBound)
}

// String renders r in its canonical comma-joined form, e.g.
// "numpy >= 1.3.0, numpy <= 2.0.0". This is the inverse of
// NewRequirement/ParseRequirementList: parsing r.String() back yields an
// equal Requirement. A pin renders as a single "name == version" block; an
// unconstrained (Any) requirement renders as the bare name. An
// unsatisfiable requirement renders as "name (unsatisfiable)", which does
// not parse back.
func (r Requirement) String() string {
	if r.unsatisfiable {
		return fmt.Sprintf("%s (unsatisfiable)", r.name)
	}
	if r.Any() {
		return r.name
	}
	if r.pinned {
		return fmt.Sprintf("%s == %s", r.name, r.pinValue)
	}

	var blocks []string
	if !r.minBound.Equal(MinVersion) {
		blocks = append(blocks, fmt.Sprintf("%s >= %s", r.name, r.minBound))
	}
	if !r.maxBound.Equal(MaxVersion) {
		blocks = append(blocks, fmt.Sprintf("%s <= %s", r.name, r.maxBound))
	}
	return strings.Join(blocks, ", ")
}
