// Package diskcache persists small, content-hash-keyed facts about
// already-compiled schema files across CLI invocations (spec.md
// SPEC_FULL S4.10). It deliberately does not attempt to serialize the
// full descriptor tree: that graph's Descriptor values are Go
// interfaces with shared, sometimes cross-file pointers, and msgpack
// (like most tag-based codecs) has no native notion of either.
// Recompiling an unchanged import in-process is cheap -- spec.md S5
// describes the core as a pure, synchronous function of (scope, AST)
// with no I/O of its own -- so this cache exists only to skip the cost
// that really does recur across invocations: re-reporting diagnostics
// for a dependency nothing has touched.
package diskcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload's shape
// changes, so a cache written by an older build is never misread.
const diskCacheSchemaVersion uint16 = 1

// Key identifies one cache entry: the SHA-256 of a file's source
// bytes combined with the numbering constants it was compiled under,
// so a cache built with one maxOrdinal is never served to a run using
// another.
type Key [32]byte

// KeyFor derives a Key from a file's source bytes and the compiler's
// maximum ordinal setting.
func KeyFor(source []byte, maxOrdinal uint32) Key {
	h := sha256.New()
	h.Write(source)
	var ordBuf [4]byte
	binary.BigEndian.PutUint32(ordBuf[:], maxOrdinal)
	h.Write(ordBuf[:])

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}

// DiagnosticRecord is the cached shape of one diagnostic.Diagnostic:
// plain fields only, no dependency on the diagnostic package's own
// representation.
type DiagnosticRecord struct {
	File    string
	Line    uint32
	Column  uint32
	Message string
}

// DiskPayload is what one cache entry stores: enough to tell a caller
// that a given source text, under a given numbering configuration, is
// already known to compile cleanly or with exactly these diagnostics,
// without repeating the parse/compile pass.
type DiskPayload struct {
	Schema      uint16
	MaxOrdinal  uint32
	OK          bool
	Diagnostics []DiagnosticRecord
}

// Cache is a directory of msgpack-encoded DiskPayload entries, one
// file per Key, safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir, creating it if necessary.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get reads and decodes the payload stored under key, if any.
func (c *Cache) Get(key Key) (*DiskPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// Put encodes and atomically writes payload under key.
func (c *Cache) Put(key Key, payload *DiskPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}

	dest := c.pathFor(key)
	tmp, err := os.CreateTemp(c.dir, "tmp-*.mp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// Clear removes every entry from the cache directory.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Dir reports the cache's root directory, for commands that need to
// describe or remove it wholesale.
func (c *Cache) Dir() string { return c.dir }
