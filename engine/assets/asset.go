package assets

import "github.com/spaghettifunk/anima-assets/engine/core"

// Kind is implemented once per type of asset, like textures, meshes or
// levels. A is the finished asset, C the context every call receives and D
// the intermediate data produced by a Format.
//
// The context is read-only from the kind's point of view; anything mutable
// it carries (a Cache, device handles) must be safe for concurrent use.
type Kind[A, C, D any] interface {
	// Category is a small keyword for the kind, e.g. "mesh". Storage
	// backends may use it to pick an identically named folder.
	Category() string

	// FromData converts intermediate data into the asset. On failure the
	// context must be left untouched.
	FromData(data D, ctx C) (A, error)

	// Cache is called right after a successful FromData so the kind can
	// record the asset. It must not fail.
	Cache(ctx C, key ResourceKey, asset A)

	// Retrieve is called before FromData and returns a cached asset if
	// there is one.
	Retrieve(ctx C, key ResourceKey) (A, bool)

	// Clear hints that some assets may have been released recently.
	// Kinds may prune entries nobody else holds and keep shared ones.
	Clear(ctx C)

	// ClearAll asks the kind to drop every cached asset.
	ClearAll(ctx C)
}

// NoCache provides the default lifecycle hooks: nothing is cached and
// Retrieve always misses. Embed it in kinds that do not cache.
type NoCache[A, C any] struct{}

func (NoCache[A, C]) Cache(C, ResourceKey, A) {}

func (NoCache[A, C]) Retrieve(C, ResourceKey) (A, bool) {
	var zero A
	return zero, false
}

func (NoCache[A, C]) Clear(C) {}

func (NoCache[A, C]) ClearAll(C) {}

// CacheHooks implements the lifecycle hooks on top of a Cache found in the
// context. Embed it in kinds that want the standard behaviour.
type CacheHooks[A, C any] struct {
	// From returns the cache held by the context. A nil cache disables
	// caching for that context.
	From func(ctx C) *Cache[A]
	// Keep decides which entries survive Clear. A nil Keep makes Clear a
	// no-op.
	Keep func(key ResourceKey, asset *A) bool
}

func (h CacheHooks[A, C]) cache(ctx C) *Cache[A] {
	if h.From == nil {
		return nil
	}
	return h.From(ctx)
}

func (h CacheHooks[A, C]) Cache(ctx C, key ResourceKey, asset A) {
	if c := h.cache(ctx); c != nil {
		if _, replaced := c.Insert(key, asset); replaced {
			core.LogDebug("replaced cached asset %s", key)
		}
	}
}

func (h CacheHooks[A, C]) Retrieve(ctx C, key ResourceKey) (A, bool) {
	if c := h.cache(ctx); c != nil {
		return c.Get(key)
	}
	var zero A
	return zero, false
}

func (h CacheHooks[A, C]) Clear(ctx C) {
	if h.Keep == nil {
		return
	}
	if c := h.cache(ctx); c != nil {
		c.Retain(h.Keep)
	}
}

func (h CacheHooks[A, C]) ClearAll(ctx C) {
	if c := h.cache(ctx); c != nil {
		c.ClearAll()
	}
}
