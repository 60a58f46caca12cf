package app

// SolveRequest describes one install request: the requirement string to
// satisfy (§3/§6 grammar), where the candidate pool comes from, and
// which packages are already installed.
type SolveRequest struct {
	Requirement     string
	CatalogPath     string
	CatalogURL      string
	CatalogCacheDir string
	InstalledPath   string
}

// OperationSummary is a display-ready projection of a types.Operation,
// decoupled from the core package so the CLI layer never needs to
// import internal/core directly.
type OperationSummary struct {
	Kind    string
	Package string
	From    string
}

// SolveResult is the outcome handed back to the CLI layer.
type SolveResult struct {
	Operations []OperationSummary
}

// ExplainResult is the dry-run counterpart to SolveResult: the compiled
// clauses and the solver's decision trail, without Plan's install/update/
// remove classification.
type ExplainResult struct {
	Clauses   []string
	Decisions []string
}

// ValidateCatalogRequest names the catalog file to parse.
type ValidateCatalogRequest struct {
	CatalogPath string
}

// ValidateCatalogResult reports how many packages and installed entries
// parsed cleanly.
type ValidateCatalogResult struct {
	PackageCount   int
	InstalledCount int
}
