package core

import (
	"sort"
	"strconv"
	"strings"
)

// Clause is a non-empty, canonical, deduplicated set of signed variable
// literals: a positive entry v asserts the package backing v must be
// installed; a negative entry -v asserts it must not be. Two Clauses
// built from the same literal set always produce an identical key,
// making them hashable and de-duplicable.
type Clause struct {
	literals []int // sorted ascending, unique
	key      string
}

// newClause builds a canonical Clause from a (possibly unsorted,
// possibly duplicate-containing) literal list.
func newClause(literals []int) Clause {
	dedup := make(map[int]bool, len(literals))
	uniq := make([]int, 0, len(literals))
	for _, l := range literals {
		if !dedup[l] {
			dedup[l] = true
			uniq = append(uniq, l)
		}
	}
	sort.Ints(uniq)
	return Clause{literals: uniq, key: clauseKey(uniq)}
}

func clauseKey(sorted []int) string {
	parts := make([]string, len(sorted))
	for i, l := range sorted {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

// Literals returns the clause's canonical, sorted, signed literal list.
func (c Clause) Literals() []int { return c.literals }

// Describe renders c as "+id | -id | ...", substituting each signed
// literal's package id via vars in place of the raw variable number --
// the same "+name-version | -name-version" pretty-printing convention
// a PackageRule applies over its underlying Literal/Not pairs.
func (c Clause) Describe(vars *varRegistry) string {
	parts := make([]string, len(c.literals))
	for i, lit := range c.literals {
		v, want := litVar(lit)
		id := vars.idFor(v)
		if want {
			parts[i] = "+" + id
		} else {
			parts[i] = "-" + id
		}
	}
	return strings.Join(parts, " | ")
}

// Key returns the string used to deduplicate clauses by their canonical
// literal set.
func (c Clause) Key() string { return c.key }

// IsAssertion reports whether c has exactly one literal.
func (c Clause) IsAssertion() bool { return len(c.literals) == 1 }

// triState is the result of evaluating a clause against a partial
// decision map: it may already be satisfied, already falsified, or
// still undecided.
type triState int8

const (
	stateUndecided triState = iota
	stateTrue
	stateFalse
)

// satisfies evaluates c under decisions (var -> assigned bool, only for
// decided vars). True if any literal is already true; false if every
// literal is decided false; undecided otherwise.
func (c Clause) satisfies(decisions map[int]bool) triState {
	allFalse := true
	for _, lit := range c.literals {
		v, want := litVar(lit)
		if decided, ok := decisions[v]; ok {
			if decided == want {
				return stateTrue
			}
			continue
		}
		allFalse = false
	}
	if allFalse {
		return stateFalse
	}
	return stateUndecided
}

// unitLiteral reports whether exactly one literal of c is undecided and
// every other literal is decided false -- in which case that literal is
// the clause's single inferable consequence.
func (c Clause) unitLiteral(decisions map[int]bool) (lit int, ok bool) {
	undecidedCount := 0
	var candidate int
	for _, l := range c.literals {
		v, want := litVar(l)
		if decided, has := decisions[v]; has {
			if decided == want {
				return 0, false // already satisfied, not unit
			}
			continue // decided false, doesn't block unit-ness
		}
		undecidedCount++
		candidate = l
		if undecidedCount > 1 {
			return 0, false
		}
	}
	if undecidedCount == 1 {
		return candidate, true
	}
	return 0, false
}

// litVar splits a signed literal into its variable id and the boolean
// value that literal asserts (true for a positive occurrence).
func litVar(lit int) (v int, want bool) {
	if lit < 0 {
		return -lit, false
	}
	return lit, true
}
