package cachemgr

import (
	"context"

	"github.com/kailas-cloud/stylebot/internal/repository/embcache"
)

// EmbeddingCache is the embedding memo managed by the Manager.
type EmbeddingCache interface {
	Cleanup() int
	Stats() embcache.Stats
	Clear()
	WarmUp(ctx context.Context, queries []string) []embcache.WarmUpResult
}

// Clearer is any in-process cache that can be emptied on demand.
type Clearer interface {
	ClearCache()
}
