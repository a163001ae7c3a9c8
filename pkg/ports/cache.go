package ports

import (
	"context"

	"github.com/aretw0/tetrator/pkg/domain"
)

// ResultCache persists finished evaluations keyed by domain.Request.Key.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns the entry for key, or domain.ErrCacheMiss.
	Get(ctx context.Context, key string) (domain.CacheEntry, error)

	// Put stores the entry for key, replacing any previous one.
	Put(ctx context.Context, key string, entry domain.CacheEntry) error
}
