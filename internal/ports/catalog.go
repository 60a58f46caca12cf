// Package ports declares the boundary interfaces the app layer depends
// on; concrete implementations live in internal/adapters.
package ports

import (
	"context"

	"depsolve/internal/types"
)

// CatalogSourcePort loads the set of packages available from one
// catalog -- a local file, an HTTP-served index, or an ecosystem-native
// feed -- into Package values the core solver can reason about.
type CatalogSourcePort interface {
	LoadPackages(ctx context.Context) ([]types.Package, error)
}

// InstalledSourcePort loads the currently-installed package set a solve
// request is evaluated against.
type InstalledSourcePort interface {
	LoadInstalled(ctx context.Context) ([]types.Package, error)
}
