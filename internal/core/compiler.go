package core

import "depsolve/internal/types"

// CompiledProblem is the output of compiling a Requirement against a
// Pool: an ordered, deduplicated CNF clause list whose first entry is
// always the job clause, plus the variable registry mapping package ids
// to the signed integers used as clause literals.
type CompiledProblem struct {
	Clauses []Clause
	Vars    *varRegistry
}

// Compile builds the CNF for req over pool, per §4.5:
//
//  1. the job clause: the disjunction of every id Pool.WhatProvides(req,
//     composer) returns; empty is a hard failure.
//  2. the dependency closure: a depth-first walk emitting, for every
//     candidate package P and every dependency d of P, an implication
//     clause (¬P ∨ q1 ∨ … ∨ qm) where q1..qm = Pool.WhatProvides(d,
//     include_indirect); recursing into q1..qm, de-duplicating visits.
//  3. at-most-one cliques: for every requirement's "identity universe"
//     (Pool.WhatProvides(req, any)), a conflict clause (¬a ∨ ¬b) for
//     every unordered pair of distinct candidates.
func Compile(pool *Pool, req types.Requirement) (CompiledProblem, error) {
	vars := newVarRegistry()
	var clauses []Clause
	seenClauses := make(map[string]bool)
	visitedCliques := make(map[string]bool)
	visitedDeps := make(map[string]bool) // package id -> dependency closure already expanded

	add := func(c Clause) {
		if seenClauses[c.Key()] {
			return
		}
		seenClauses[c.Key()] = true
		clauses = append(clauses, c)
	}

	jobIDs := pool.WhatProvides(req, ModeComposer)
	if len(jobIDs) == 0 {
		return CompiledProblem{}, types.ErrMissingRequirementInPool(req.String())
	}
	add(newClause(positiveLiterals(vars, jobIDs)))
	addConflictClique(pool, vars, add, visitedCliques, req)

	var stack []string
	stack = append(stack, jobIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visitedDeps[id] {
			continue
		}
		visitedDeps[id] = true

		pkg, err := pool.ByID(id)
		if err != nil {
			return CompiledProblem{}, err
		}
		pVar := vars.varFor(id)

		for _, dep := range pkg.Dependencies() {
			depIDs := pool.WhatProvides(dep, ModeIncludeIndirect)
			if len(depIDs) == 0 {
				return CompiledProblem{}, types.ErrMissingRequirementInPool(dep.String())
			}
			literals := append([]int{-pVar}, positiveLiterals(vars, depIDs)...)
			add(newClause(literals))
			addConflictClique(pool, vars, add, visitedCliques, dep)
			stack = append(stack, depIDs...)
		}
	}

	return CompiledProblem{Clauses: clauses, Vars: vars}, nil
}

// addConflictClique emits the at-most-one clauses for req's identity
// universe (every provider of req under ModeAny), keyed so the same
// universe is never expanded twice.
func addConflictClique(pool *Pool, vars *varRegistry, add func(Clause), visited map[string]bool, req types.Requirement) {
	universe := pool.WhatProvides(req, ModeAny)
	if len(universe) < 2 {
		return
	}
	cliqueKey := req.Name()
	if visited[cliqueKey] {
		return
	}
	visited[cliqueKey] = true

	for i := 0; i < len(universe); i++ {
		for j := i + 1; j < len(universe); j++ {
			a := vars.varFor(universe[i])
			b := vars.varFor(universe[j])
			add(newClause([]int{-a, -b}))
		}
	}
}

func positiveLiterals(vars *varRegistry, ids []string) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = vars.varFor(id)
	}
	return out
}
