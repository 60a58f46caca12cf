package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"depsolve/internal/shared"
	"depsolve/internal/types"
)

const defaultCatalogHTTPTimeout = 30 * time.Second

// CatalogHTTPAdapter fetches a catalog file served over HTTP (the same
// YAML shape CatalogFileAdapter reads from disk), retrying transient
// failures with exponential backoff and optionally caching the response
// on disk keyed by a hash of the request.
type CatalogHTTPAdapter struct {
	URL        string
	CacheDir   string
	CacheTTL   time.Duration
	httpClient *http.Client
}

// NewCatalogHTTPAdapter builds a CatalogHTTPAdapter fetching from url. A
// non-empty cacheDir with a positive ttl enables on-disk response
// caching.
func NewCatalogHTTPAdapter(url, cacheDir string, ttl time.Duration) *CatalogHTTPAdapter {
	return &CatalogHTTPAdapter{
		URL:        url,
		CacheDir:   cacheDir,
		CacheTTL:   ttl,
		httpClient: &http.Client{Timeout: defaultCatalogHTTPTimeout},
	}
}

// LoadPackages fetches and parses the catalog's package list.
func (a *CatalogHTTPAdapter) LoadPackages(ctx context.Context) ([]types.Package, error) {
	raw, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return parsePackageStrings(raw.Packages)
}

// LoadInstalled fetches and parses the catalog's installed-package list.
func (a *CatalogHTTPAdapter) LoadInstalled(ctx context.Context) ([]types.Package, error) {
	raw, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return parsePackageStrings(raw.Installed)
}

func (a *CatalogHTTPAdapter) fetch(ctx context.Context) (catalogFile, error) {
	key := a.cacheKey()
	if cached, ok := a.readCache(key); ok {
		var raw catalogFile
		if err := yaml.Unmarshal(cached, &raw); err == nil {
			return raw, nil
		}
	}

	payload, err := a.fetchWithRetry(ctx)
	if err != nil {
		return catalogFile{}, err
	}

	var raw catalogFile
	if err := yaml.Unmarshal(payload, &raw); err != nil {
		return catalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid catalog response format").
			WithCause(err)
	}
	a.writeCache(key, payload)
	return raw, nil
}

// fetchWithRetry performs the HTTP GET, retrying transient failures
// (network errors and 5xx/429 responses) with exponential backoff
// bounded by the request's context.
func (a *CatalogHTTPAdapter) fetchWithRetry(ctx context.Context) ([]byte, error) {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)

	var payload []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := a.httpClient.Do(req)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("url", a.URL).Msg("depsolve: catalog fetch failed, retrying")
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("catalog endpoint returned a transient error")
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("catalog endpoint returned a non-200 status").
				WithCause(shared.HTTPStatusError(resp.StatusCode, a.URL)))
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(err)
		}
		payload = body
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("catalog fetch failed after retries").
			WithCause(err)
	}
	return payload, nil
}

func (a *CatalogHTTPAdapter) cacheKey() string {
	sum := sha256.Sum256([]byte(a.URL))
	return hex.EncodeToString(sum[:])
}

func (a *CatalogHTTPAdapter) readCache(key string) ([]byte, bool) {
	if a.CacheDir == "" || a.CacheTTL <= 0 {
		return nil, false
	}
	path := filepath.Join(a.CacheDir, key)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > a.CacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (a *CatalogHTTPAdapter) writeCache(key string, payload []byte) {
	if a.CacheDir == "" || a.CacheTTL <= 0 {
		return
	}
	if err := os.MkdirAll(a.CacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(a.CacheDir, key), payload, 0o644)
}
