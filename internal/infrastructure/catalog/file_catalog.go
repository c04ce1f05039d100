package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	"github.com/samber/lo"
)

// cacheEntry is one parsed read of the catalog file.
type cacheEntry struct {
	raw       []byte
	catalog   domain.Catalog
	expiresAt time.Time
}

// FileCatalog serves the backgrounds catalog from a JSON file on disk,
// re-reading it once the cached copy is older than the TTL.
// Implements domain.BackgroundCatalog.
type FileCatalog struct {
	mu        sync.RWMutex
	entry     *cacheEntry
	path      string
	urlPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// NewFileCatalog creates a catalog reading path. Image hrefs are built by
// joining urlPrefix and each entry's image file name.
func NewFileCatalog(path, urlPrefix string, ttl time.Duration) *FileCatalog {
	return &FileCatalog{
		path:      path,
		urlPrefix: urlPrefix,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Raw returns the catalog file contents.
func (c *FileCatalog) Raw(ctx context.Context) ([]byte, error) {
	entry, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return entry.raw, nil
}

// Lookup resolves a background by id.
func (c *FileCatalog) Lookup(ctx context.Context, id string) (domain.Background, error) {
	entry, err := c.get(ctx)
	if err != nil {
		return domain.Background{}, err
	}

	bg, ok := lo.Find(entry.catalog.Backgrounds, func(b domain.Background) bool {
		return b.ID == id
	})
	if !ok {
		return domain.Background{}, fmt.Errorf("%w: %q", domain.ErrBackgroundNotFound, id)
	}
	if bg.Image != "" {
		bg.Href = path.Join(c.urlPrefix, bg.Image)
	}
	return bg, nil
}

func (c *FileCatalog) get(ctx context.Context) (*cacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()
	if entry != nil && c.now().Before(entry.expiresAt) {
		return entry, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have reloaded while we waited for the lock.
	if c.entry != nil && c.now().Before(c.entry.expiresAt) {
		return c.entry, nil
	}

	loaded, err := c.load()
	if err != nil {
		metrics.RecordCatalogLoad("error")
		return nil, err
	}
	metrics.RecordCatalogLoad("success")
	c.entry = loaded
	return loaded, nil
}

func (c *FileCatalog) load() (*cacheEntry, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	var cat domain.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCatalogUnavailable, c.path, err)
	}
	cat.Backgrounds = lo.Filter(cat.Backgrounds, func(b domain.Background, _ int) bool {
		return b.ID != ""
	})

	return &cacheEntry{
		raw:       raw,
		catalog:   cat,
		expiresAt: c.now().Add(c.ttl),
	}, nil
}
