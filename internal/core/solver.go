package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"depsolve/internal/policies"
	"depsolve/internal/types"
)

// Decision is one chronological entry of the solver's decision map: the
// package id assigned, the boolean it was assigned, and the clause that
// justified the assignment (the "reason").
type Decision struct {
	ID     string
	Value  bool
	Reason Clause
}

// SolveResult is the final, fully-decided state produced by Solve: the
// chronological decision list the Planner walks, plus direct lookup by
// id for convenience.
type SolveResult struct {
	Order     []Decision
	Values    map[string]bool
	Installed map[string]bool
}

// solverState bundles the mutable bookkeeping one Solve invocation
// threads through the assertion pass and main loop.
type solverState struct {
	pool      *Pool
	vars      *varRegistry
	values    map[int]bool
	order     []Decision
	installed map[string]bool
}

func (s *solverState) isDecided(v int) (bool, bool) {
	val, ok := s.values[v]
	return val, ok
}

func (s *solverState) decide(v int, val bool, reason Clause) {
	s.values[v] = val
	s.order = append(s.order, Decision{ID: s.vars.idFor(v), Value: val, Reason: reason})
}

// rollback undoes every decision recorded after the first mark entries of
// the chronological order, including the inferences unit propagation made.
func (s *solverState) rollback(mark int) {
	for _, d := range s.order[mark:] {
		delete(s.values, s.vars.varFor(d.ID))
	}
	s.order = s.order[:mark]
}

// Solve runs the top-level DPLL procedure of §4.7 for req against pool,
// given the set of currently-installed package ids. pool is handed to
// the Policy directly as its policies.PackageLookup.
func Solve(ctx context.Context, pool *Pool, req types.Requirement, installedIDs map[string]bool) (SolveResult, error) {
	problem, err := Compile(pool, req)
	if err != nil {
		return SolveResult{}, err
	}

	state := &solverState{
		pool:      pool,
		vars:      problem.Vars,
		values:    make(map[int]bool),
		installed: installedIDs,
	}
	installedSet := policies.NewInstalledSet(installedIDs)

	remaining := problem.Clauses
	jobClause := remaining[0]

	// Assertion pass: every |c| == 1 clause decides its sole literal.
	var postAssertion []Clause
	for _, c := range remaining {
		if c.IsAssertion() {
			v, want := litVar(c.Literals()[0])
			if existing, ok := state.isDecided(v); ok {
				if existing != want {
					return SolveResult{}, types.ErrSolverImpossible("assertion clause conflicts with an earlier assertion")
				}
				continue
			}
			state.decide(v, want, c)
			continue
		}
		postAssertion = append(postAssertion, c)
	}
	remaining = postAssertion

	log.Ctx(ctx).Debug().Int("clauses", len(remaining)).Str("job", req.String()).Msg("depsolve: compiled job, starting assertion pass")

	// Job decision: restrict candidates to undecided literals of J, then
	// (if any installed package appears among them) to installed ones.
	// A job clause the assertion pass already decided (the common case
	// when composer matching narrowed to a single provider) needs no
	// further Policy involvement -- it is already a single candidate.
	candidates := undecidedLiterals(jobClause, state.values)
	if len(candidates) > 0 {
		candidateIDs := varsToIDs(state.vars, candidates)
		if installedAmong := intersectInstalled(candidateIDs, installedIDs); len(installedAmong) > 0 {
			candidateIDs = installedAmong
		}
		ranked, single, err := policies.PreferInstalledThenHighestVersion(pool, installedSet, candidateIDs)
		if err != nil {
			return SolveResult{}, err
		}
		if !single || len(ranked) != 1 {
			return SolveResult{}, types.ErrSolverNotImplemented("job decision did not narrow to exactly one candidate")
		}
		jobVar := state.vars.varFor(ranked[0])
		state.decide(jobVar, true, jobClause)
	}

	ok, remaining, err := dpllIteration(remaining, state)
	if err != nil {
		return SolveResult{}, err
	}
	if !ok {
		return SolveResult{}, types.ErrSolverImpossible("job decision immediately conflicted")
	}

	for len(remaining) > 0 {
		c := remaining[0]
		rest := remaining[1:]

		switch c.satisfies(state.values) {
		case stateTrue:
			remaining = rest
			continue
		case stateFalse:
			return SolveResult{}, types.ErrSolverImpossible("popped clause evaluated false under current assignment")
		}

		undecided := undecidedLiterals(c, state.values)
		candidateIDs := varsToIDs(state.vars, undecided)
		deque, single, err := policies.PreferInstalledThenHighestVersion(pool, installedSet, candidateIDs)
		if err != nil {
			return SolveResult{}, err
		}
		if !single || len(deque) == 0 {
			return SolveResult{}, types.ErrSolverNotImplemented("clause candidate set did not narrow to a single package name")
		}

		chosenVar := state.vars.varFor(deque[0])
		mark := len(state.order)
		state.decide(chosenVar, true, c)
		ok, next, err := dpllIteration(rest, state)
		if err != nil {
			return SolveResult{}, err
		}
		if ok {
			remaining = next
			continue
		}

		// First attempt conflicted: undo it with its inferences, flip the
		// decision to false and retry once.
		state.rollback(mark)
		state.decide(chosenVar, false, c)
		ok, next, err = dpllIteration(rest, state)
		if err != nil {
			return SolveResult{}, err
		}
		if !ok {
			return SolveResult{}, types.ErrSolverNotImplemented("backtracking beyond a single level is not supported")
		}
		remaining = next
	}

	values := make(map[string]bool, len(state.values))
	for v, val := range state.values {
		values[state.vars.idFor(v)] = val
	}

	return SolveResult{Order: state.order, Values: values, Installed: installedIDs}, nil
}

// dpllIteration is the pure (C, V) -> (ok, C') step of §4.7: prune
// satisfied clauses, fail if any is false, run unit propagation (and,
// equivalently, singleton/assertion elimination) to a fixpoint, and
// return the surviving clause list. Every inference is recorded through
// state.decide, so it joins the chronological decision order with the
// clause that forced it as its reason.
func dpllIteration(clauses []Clause, state *solverState) (bool, []Clause, error) {
	decisions := state.values
	for {
		var surviving []Clause
		progressed := false

		for _, c := range clauses {
			switch c.satisfies(decisions) {
			case stateTrue:
				continue
			case stateFalse:
				return false, nil, nil
			}
			surviving = append(surviving, c)
		}
		clauses = surviving

		for _, c := range clauses {
			if lit, ok := c.unitLiteral(decisions); ok {
				v, want := litVar(lit)
				if existing, has := decisions[v]; has {
					if existing != want {
						return false, nil, nil
					}
					continue
				}
				state.decide(v, want, c)
				progressed = true
			}
		}

		if !progressed {
			return true, clauses, nil
		}
	}
}

func undecidedLiterals(c Clause, decisions map[int]bool) []int {
	var out []int
	for _, lit := range c.Literals() {
		v, _ := litVar(lit)
		if _, ok := decisions[v]; !ok {
			out = append(out, lit)
		}
	}
	return out
}

func varsToIDs(vars *varRegistry, literals []int) []string {
	out := make([]string, 0, len(literals))
	for _, lit := range literals {
		v, _ := litVar(lit)
		out = append(out, vars.idFor(v))
	}
	return out
}

func intersectInstalled(ids []string, installed map[string]bool) []string {
	var out []string
	for _, id := range ids {
		if installed[id] {
			out = append(out, id)
		}
	}
	return out
}
