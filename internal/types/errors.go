package types

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrInvalidVersion reports a version string that failed to parse.
// Malformed requirement and package strings have their own constructors
// below. The offending literal text is carried in the message for
// diagnostics.
func ErrInvalidVersion(literal string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid version %q: %s", literal, reason))
}

// ErrInvalidRequirement reports a malformed requirement string, or a
// requirement built from contradictory atomic constraints (two distinct
// Equal constraints).
func ErrInvalidRequirement(literal string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid requirement %q: %s", literal, reason))
}

// ErrInvalidPackageString reports a malformed package string (the
// "name-version; depends(...); provides(...)" grammar of §6).
func ErrInvalidPackageString(literal string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid package string %q: %s", literal, reason))
}

// ErrMissingRequirementInPool reports that a requirement has zero
// providers in the pool at clause-compile time.
func ErrMissingRequirementInPool(requirement string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no package in pool satisfies requirement: %s", requirement))
}

// ErrMissingPackageInPool reports a lookup that referenced an id absent
// from the pool.
func ErrMissingPackageInPool(id string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("package id not present in pool: %s", id))
}

// ErrSolverImpossible reports a clause that evaluated false under the
// current assignment during the main solve loop -- an internal invariant
// violation (a bug in the compiler or the solver), not a documented
// limitation.
func ErrSolverImpossible(reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("solver reached an impossible state: %s", reason))
}

// ErrSolverNotImplemented reports a documented limitation: multi-level
// backtracking, a policy result spanning more than one package name or
// more than one surviving candidate, or an in-flight update decision.
// These terminate the solve call but are not bugs.
func ErrSolverNotImplemented(reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("solver limitation reached: %s", reason))
}

// ErrPlannerAmbiguous reports that the planner found more than one
// installed package with the same name as a newly-selected package,
// making the Update-vs-Install decision ambiguous.
func ErrPlannerAmbiguous(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("planner found multiple installed packages named %q", name))
}
