// Package adapters implements the ports the app layer depends on:
// catalog ingestion from files, HTTP endpoints, and ecosystem-native
// feeds.
package adapters

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/core"
	"depsolve/internal/types"
)

// catalogFile is the on-disk YAML shape a CatalogFileAdapter reads: a
// flat list of package strings in the grammar of §6, plus which of them
// are already installed.
type catalogFile struct {
	Packages  []string `yaml:"packages"`
	Installed []string `yaml:"installed"`
}

// CatalogFileAdapter loads a package catalog from a local YAML file.
type CatalogFileAdapter struct {
	Path string
}

// NewCatalogFileAdapter builds a CatalogFileAdapter reading from path.
func NewCatalogFileAdapter(path string) *CatalogFileAdapter {
	return &CatalogFileAdapter{Path: path}
}

// LoadPackages reads and parses every package string in the catalog
// file.
func (a *CatalogFileAdapter) LoadPackages(ctx context.Context) ([]types.Package, error) {
	raw, err := a.load()
	if err != nil {
		return nil, err
	}
	return parsePackageStrings(raw.Packages)
}

// LoadInstalled reads and parses the catalog file's installed-package
// list, letting CatalogFileAdapter double as an InstalledSourcePort for
// simple, single-file scenarios.
func (a *CatalogFileAdapter) LoadInstalled(ctx context.Context) ([]types.Package, error) {
	raw, err := a.load()
	if err != nil {
		return nil, err
	}
	return parsePackageStrings(raw.Installed)
}

func (a *CatalogFileAdapter) load() (catalogFile, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return catalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
	}
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return catalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid catalog file format").
			WithCause(err)
	}
	return raw, nil
}

func parsePackageStrings(raw []string) ([]types.Package, error) {
	out := make([]types.Package, 0, len(raw))
	for _, line := range raw {
		pkg, err := core.ParsePackageString(line)
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, nil
}
