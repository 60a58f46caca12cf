package app

import (
	"time"

	"depsolve/internal/adapters"
	"depsolve/internal/ports"
)

// Service wires the catalog/installed-set ports into the solver core. It
// mirrors the teacher's own Service: a flat struct of injected ports plus
// a Clock, constructed once by NewService and passed by value to each
// operation method.
type Service struct {
	CatalogSource   ports.CatalogSourcePort
	InstalledSource ports.InstalledSourcePort
	Clock           func() time.Time
}

// NewService builds a Service around a catalog described by req. A
// non-empty CatalogURL prefers the HTTP adapter (with on-disk caching
// under CatalogCacheDir); otherwise the catalog is read from
// CatalogPath. A separate InstalledPath, when set, loads the installed
// set from its own file; otherwise the catalog's own "installed" section
// is reused.
func NewService(req SolveRequest) Service {
	var source ports.CatalogSourcePort
	if req.CatalogURL != "" {
		source = adapters.NewCatalogHTTPAdapter(req.CatalogURL, req.CatalogCacheDir, 10*time.Minute)
	} else {
		source = adapters.NewCatalogFileAdapter(req.CatalogPath)
	}

	var installed ports.InstalledSourcePort
	if req.InstalledPath != "" {
		installed = adapters.NewCatalogFileAdapter(req.InstalledPath)
	} else if fileSource, ok := source.(ports.InstalledSourcePort); ok {
		installed = fileSource
	}

	return Service{
		CatalogSource:   source,
		InstalledSource: installed,
		Clock:           time.Now,
	}
}
