package cache

import (
	"context"
	"time"
)

// NullCache keeps nothing. The CLI uses it for --no-cache and serve uses it
// when no Redis URL is configured. Every lookup misses, so the runner lays
// out each request afresh and still reports the miss.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Backend() string { return "none" }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
