package resolver

import (
	"io/fs"

	"schemac.dev/schemac/compiler"
	"schemac.dev/schemac/internal/diskcache"
)

// Cached wraps an ImportCallback with an on-disk record of whether a
// given source text, under a given numbering configuration, already
// resolved without an import error (spec.md SPEC_FULL S4.10); diagnostics
// reported inside that file are not recorded. It always calls through
// to Underlying for the real compiled File -- recompiling an unchanged
// import in-process is cheap, per spec.md S5 -- but records the
// outcome so a caller like cmd/schemac can skip redundant diagnostic
// reporting for a dependency that hasn't changed since the last run.
type Cached struct {
	Underlying compiler.ImportCallback
	FS         fs.FS
	Cache      *diskcache.Cache
	MaxOrdinal uint32
}

// Resolve implements compiler.ImportCallback.
func (c *Cached) Resolve(name string) compiler.ImportResult {
	result := c.Underlying(name)

	data, err := fs.ReadFile(c.FS, name)
	if err != nil {
		return result
	}

	key := diskcache.KeyFor(data, c.MaxOrdinal)
	if _, hit, _ := c.Cache.Get(key); hit {
		return result
	}
	_ = c.Cache.Put(key, &diskcache.DiskPayload{
		MaxOrdinal: c.MaxOrdinal,
		OK:         result.Err == "",
	})
	return result
}

// WasClean reports whether source, under maxOrdinal, is recorded as
// having compiled without an import error the last time it was seen.
func WasClean(cache *diskcache.Cache, source []byte, maxOrdinal uint32) bool {
	payload, hit, err := cache.Get(diskcache.KeyFor(source, maxOrdinal))
	return err == nil && hit && payload.OK
}
