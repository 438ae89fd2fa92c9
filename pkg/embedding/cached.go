package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProvider wraps another provider with an in-memory cache so
// repeated questions do not pay the embedding round trip twice.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *gocache.Cache
}

var _ EmbeddingProvider = &CachedProvider{}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)
	if cached, found := p.cache.Get(key); found {
		return cached.([]float32), nil
	}

	vec, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}

func (p *CachedProvider) Dimensions() int {
	return p.inner.Dimensions()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
