package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsolve/internal/adapters"
	"depsolve/internal/core"
	"depsolve/internal/types"
)

// Solve loads the catalog and installed set named by req, compiles and
// solves the clause set for req.Requirement, and returns the resulting
// install/update/remove plan.
func (s Service) Solve(ctx context.Context, req SolveRequest) (SolveResult, error) {
	pool, installedRepo, installedIDs, err := s.loadPool(ctx)
	if err != nil {
		return SolveResult{}, err
	}

	requirements, err := core.ParseRequirementList(req.Requirement)
	if err != nil {
		return SolveResult{}, err
	}
	if len(requirements) != 1 {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("solve takes exactly one requirement")
	}

	result, err := core.Solve(ctx, pool, requirements[0], installedIDs)
	if err != nil {
		return SolveResult{}, err
	}
	ops, err := core.Plan(pool, installedRepo, result)
	if err != nil {
		return SolveResult{}, err
	}

	log.Ctx(ctx).Debug().
		Int("decisions", len(result.Order)).
		Int("operations", len(ops)).
		Str("requirement", req.Requirement).
		Msg("depsolve: solve completed")

	return SolveResult{Operations: summarizeOperations(ops)}, nil
}

// Explain compiles the clause set for req.Requirement and reports the
// CNF and, unlike Solve, the raw decision trail without collapsing it
// into an Install/Update/Remove plan -- a dry run for debugging why the
// solver chose what it chose.
func (s Service) Explain(ctx context.Context, req SolveRequest) (ExplainResult, error) {
	pool, _, installedIDs, err := s.loadPool(ctx)
	if err != nil {
		return ExplainResult{}, err
	}

	requirements, err := core.ParseRequirementList(req.Requirement)
	if err != nil {
		return ExplainResult{}, err
	}
	if len(requirements) != 1 {
		return ExplainResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("explain takes exactly one requirement")
	}

	problem, err := core.Compile(pool, requirements[0])
	if err != nil {
		return ExplainResult{}, err
	}
	result, err := core.Solve(ctx, pool, requirements[0], installedIDs)
	if err != nil {
		return ExplainResult{}, err
	}

	clauses := make([]string, 0, len(problem.Clauses))
	for _, c := range problem.Clauses {
		clauses = append(clauses, c.Describe(problem.Vars))
	}
	decisions := make([]string, 0, len(result.Order))
	for _, d := range result.Order {
		decisions = append(decisions, fmt.Sprintf("%s=%t", d.ID, d.Value))
	}
	return ExplainResult{Clauses: clauses, Decisions: decisions}, nil
}

// ValidateCatalog loads a catalog file and reports how many package and
// installed entries parsed without error, surfacing the first parse
// failure otherwise.
func (s Service) ValidateCatalog(ctx context.Context, req ValidateCatalogRequest) (ValidateCatalogResult, error) {
	source := loadedCatalogSource(req.CatalogPath)
	packages, err := source.LoadPackages(ctx)
	if err != nil {
		return ValidateCatalogResult{}, err
	}
	installed, err := source.LoadInstalled(ctx)
	if err != nil {
		return ValidateCatalogResult{}, err
	}
	return ValidateCatalogResult{PackageCount: len(packages), InstalledCount: len(installed)}, nil
}

func loadedCatalogSource(path string) *adapters.CatalogFileAdapter {
	return adapters.NewCatalogFileAdapter(path)
}

func (s Service) loadPool(ctx context.Context) (*core.Pool, *core.Repository, map[string]bool, error) {
	packages, err := s.CatalogSource.LoadPackages(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	var installed []types.Package
	if s.InstalledSource != nil {
		installed, err = s.InstalledSource.LoadInstalled(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	installedRepo := core.NewRepository(installed)
	repo := core.NewRepository(packages)
	pool := core.NewPool(repo, installedRepo)
	pool.CheckInvariants(ctx)

	installedIDs := make(map[string]bool, len(installed))
	for _, pkg := range installed {
		installedIDs[pkg.ID()] = true
	}
	return pool, installedRepo, installedIDs, nil
}

func summarizeOperations(ops []types.Operation) []OperationSummary {
	out := make([]OperationSummary, 0, len(ops))
	for _, op := range ops {
		summary := OperationSummary{Kind: operationKindString(op)}
		if op.Kind == types.OpUpdate {
			summary.From = op.From.String()
			summary.Package = op.To.String()
		} else {
			summary.Package = op.Pkg.String()
		}
		out = append(out, summary)
	}
	return out
}

func operationKindString(op types.Operation) string {
	switch op.Kind {
	case types.OpInstall:
		return "install"
	case types.OpRemove:
		return "remove"
	case types.OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}
