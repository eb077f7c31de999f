// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rulecache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/openEuler-BaseService/polkit-pkla-compat/internal/rule"
)

// snapshot is the CBOR-encoded cache payload for one directory: its
// fingerprint at write time (defense in depth against a filename
// collision or truncated write) and its parsed rules.
type snapshot struct {
	Fingerprint string      `cbor:"fingerprint"`
	Rules       []rule.Rule `cbor:"rules"`
}

// Cache is a directory of content-addressed, zstd-compressed CBOR
// snapshot files. The zero value is unusable; construct with Open.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir. It does not create dir up front:
// if dir does not exist or is not writable, Load reports a miss and
// Save logs the skipped write at debug, neither returning an error.
func Open(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".cbor.zst")
}

// Load returns the cached rule.Store for dir if a snapshot exists
// whose fingerprint matches dir's current contents. A cache miss,
// corrupted entry, or fingerprinting error all return (nil, false)
// rather than an error: this cache is an optimization, and every
// failure mode here is equivalent to "go reparse it".
func (c *Cache) Load(logger *slog.Logger, dir string) (*rule.Store, bool) {
	fingerprint, err := Fingerprint(dir)
	if err != nil {
		return nil, false
	}

	compressed, err := os.ReadFile(c.path(fingerprint))
	if err != nil {
		return nil, false
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		logger.Warn("rulecache: zstd decoder init failed", "error", err)
		return nil, false
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		logger.Warn("rulecache: corrupted snapshot, falling back to reparse", "dir", dir, "error", err)
		return nil, false
	}

	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		logger.Warn("rulecache: malformed snapshot, falling back to reparse", "dir", dir, "error", err)
		return nil, false
	}
	if snap.Fingerprint != fingerprint {
		logger.Warn("rulecache: fingerprint mismatch on cached snapshot, falling back to reparse", "dir", dir)
		return nil, false
	}

	return rule.FromCachedRules(dir, snap.Rules), true
}

// Save writes store's parsed rules into the cache under dir's current
// fingerprint. Failure to write is logged at debug and otherwise
// ignored: a missing cache entry just means the next rebuild
// reparses, which is always correct, only slower.
func (c *Cache) Save(logger *slog.Logger, dir string, store *rule.Store) {
	fingerprint, err := Fingerprint(dir)
	if err != nil {
		logger.Debug("rulecache: skipping save, fingerprint failed", "dir", dir, "error", err)
		return
	}

	data, err := cbor.Marshal(snapshot{Fingerprint: fingerprint, Rules: store.Rules()})
	if err != nil {
		logger.Debug("rulecache: skipping save, cbor encode failed", "dir", dir, "error", err)
		return
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		logger.Debug("rulecache: skipping save, zstd encoder init failed", "error", err)
		return
	}
	compressed := encoder.EncodeAll(data, nil)
	encoder.Close()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		logger.Debug("rulecache: skipping save, cache dir unwritable", "dir", c.dir, "error", err)
		return
	}

	tmp := c.path(fingerprint) + fmt.Sprintf(".tmp-%d", os.Getpid())
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		logger.Debug("rulecache: skipping save, write failed", "dir", dir, "error", err)
		return
	}
	if err := os.Rename(tmp, c.path(fingerprint)); err != nil {
		logger.Debug("rulecache: skipping save, rename failed", "dir", dir, "error", err)
		os.Remove(tmp)
	}
}
