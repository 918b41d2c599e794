package ffi

import (
	"go.uber.org/zap"

	"github.com/wippyai/zdef/ffi/internal/parser"
	"github.com/wippyai/zdef/types"
)

// cacheEntry is a recorded resolution. A nil desc with a non-nil err is a
// recorded failure, distinct from a missing entry.
type cacheEntry struct {
	desc *types.Descriptor
	err  error
}

type declCache struct {
	entries map[string]cacheEntry
}

func newDeclCache() *declCache {
	return &declCache{entries: make(map[string]cacheEntry)}
}

func (c *declCache) get(text string) (cacheEntry, bool) {
	ent, ok := c.entries[text]
	return ent, ok
}

func (c *declCache) put(text string, ent cacheEntry) {
	c.entries[text] = ent
}

func (c *declCache) len() int {
	return len(c.entries)
}

// typeExprName is the synthetic name a bare type expression is declared under.
const typeExprName = "zdef"

// ParseTypeExpression resolves a bare type expression such as "i32" or
// "[*:0]const u8". Each distinct text is parsed at most once per engine;
// later calls return the recorded descriptor or the recorded failure.
// Diagnostics are reported on the first call only.
func (e *Engine) ParseTypeExpression(text string) (*types.Descriptor, error) {
	if ent, ok := e.cache.get(text); ok {
		e.stats.CacheHits++
		e.log.Debug("type expression cache hit", zap.String("text", text))
		return ent.desc, ent.err
	}
	e.stats.CacheMisses++

	src := "const " + typeExprName + ": " + text + "\n;"
	d, err := e.declaration(parser.ParseWrapped, src, nil, ModeTypeExpression)
	e.cache.put(text, cacheEntry{desc: d, err: err})

	e.log.Debug("type expression cached",
		zap.String("text", text),
		zap.Bool("ok", err == nil),
		zap.Int("entries", e.cache.len()),
	)
	return d, err
}

// Cached reports whether text has a recorded resolution, successful or not.
func (e *Engine) Cached(text string) bool {
	_, ok := e.cache.get(text)
	return ok
}
