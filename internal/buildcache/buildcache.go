package buildcache

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"incremental-engine/internal/hashutil"
	"incremental-engine/internal/lfu"
	"incremental-engine/internal/lru"
)

// Strategy names the replacement policy backing a BuildCache.
type Strategy string

const (
	LRU Strategy = "lru"
	LFU Strategy = "lfu"
)

// DefaultMaxSize is the replacement policy capacity used when a BuildCache
// is constructed without an explicit size.
const DefaultMaxSize = 1_000_000_000

// BuildCache is the target x command x dependency-set build-result cache.
// It owns exactly one Policy instance at a time; SetStrategy swaps it for
// a fresh, empty one of the requested kind, discarding every entry.
//
// BuildCache additionally keeps a target -> []cache key index, purely in
// memory, so CleanTargetCache can find and evict the keys CacheBuildResult
// stored for a target without scanning the whole policy.
type BuildCache struct {
	mu       sync.Mutex
	cacheDir string
	maxSize  int
	strategy Strategy
	policy   Policy

	targetKeys map[string]map[string]bool // target -> set of cache keys
	timestamps map[string]int64           // cache key -> last-write time, for CleanExpiredCache

	store *BadgerStore // optional durable backing, see AttachStore
}

// New creates a BuildCache rooted at cacheDir (created if missing),
// backed by the given strategy ("lru" or "lfu", defaulting to "lru") at
// maxSize capacity (DefaultMaxSize if <= 0).
func New(cacheDir string, strategy Strategy, maxSize int) *BuildCache {
	if cacheDir != "" {
		_ = os.MkdirAll(cacheDir, 0o755)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if strategy != LFU {
		strategy = LRU
	}
	bc := &BuildCache{
		cacheDir:   cacheDir,
		maxSize:    maxSize,
		targetKeys: make(map[string]map[string]bool),
		timestamps: make(map[string]int64),
	}
	bc.strategy = strategy
	bc.policy = newPolicy(strategy, maxSize)
	return bc
}

func newPolicy(strategy Strategy, maxSize int) Policy {
	if strategy == LFU {
		return lfu.New(maxSize)
	}
	return lru.New(maxSize)
}

// SetStrategy swaps the backing replacement policy for a fresh instance of
// the requested kind at the same capacity. All cached entries are lost;
// the target index is cleared too since its keys no longer resolve to
// anything.
func (bc *BuildCache) SetStrategy(strategy Strategy) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if strategy != LFU {
		strategy = LRU
	}
	bc.strategy = strategy
	bc.policy = newPolicy(strategy, bc.maxSize)
	bc.targetKeys = make(map[string]map[string]bool)
	bc.timestamps = make(map[string]int64)
}

// buildKey derives the cache key for (target, command, dependencies) by
// hashing a canonical key string: dependency file contents are hashed
// from disk at call time, in the order dependencies were supplied; a
// missing or unreadable dependency contributes an empty hash string (not
// the hash of empty content).
func buildKey(target, command string, dependencies []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "target=%s;command=%s", target, hashutil.ContentHashString(command))
	for _, dep := range dependencies {
		content, err := os.ReadFile(dep)
		hash := ""
		if err == nil {
			hash = hashutil.ContentHash(content)
		}
		fmt.Fprintf(&b, ";dep=%s:%s", dep, hash)
	}
	return hashutil.ContentHashString(b.String())
}

// CacheBuildResult stores result under the key derived from (target,
// command, dependencies), returning the backing policy's Put result, and
// records the key under target's index.
func (bc *BuildCache) CacheBuildResult(target, command string, dependencies []string, result string, now int64) bool {
	key := buildKey(target, command, dependencies)

	bc.mu.Lock()
	defer bc.mu.Unlock()
	ok := bc.policy.Put(key, result)
	if bc.targetKeys[target] == nil {
		bc.targetKeys[target] = make(map[string]bool)
	}
	bc.targetKeys[target][key] = true
	bc.timestamps[key] = now
	if bc.store != nil {
		_ = bc.store.Put(key, result)
	}
	return ok
}

// GetCachedBuildResult recomputes the key identically to CacheBuildResult
// and returns the policy's stored value, or "" on a miss.
func (bc *BuildCache) GetCachedBuildResult(target, command string, dependencies []string) string {
	key := buildKey(target, command, dependencies)
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.policy.Get(key)
}

// NeedsRebuild reports whether GetCachedBuildResult would miss.
func (bc *BuildCache) NeedsRebuild(target, command string, dependencies []string) bool {
	return bc.GetCachedBuildResult(target, command, dependencies) == ""
}

// CleanAllCache flushes the in-memory policy and removes and recreates
// cache_dir.
func (bc *BuildCache) CleanAllCache() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.policy.Clear()
	bc.targetKeys = make(map[string]map[string]bool)
	bc.timestamps = make(map[string]int64)
	if bc.store != nil {
		_ = bc.store.DropAll()
	}

	if bc.cacheDir == "" {
		return nil
	}
	if err := os.RemoveAll(bc.cacheDir); err != nil {
		return fmt.Errorf("buildcache: remove %s: %w", bc.cacheDir, err)
	}
	if err := os.MkdirAll(bc.cacheDir, 0o755); err != nil {
		return fmt.Errorf("buildcache: recreate %s: %w", bc.cacheDir, err)
	}
	return nil
}

// CleanExpiredCache evicts every cache key last written before cutoff (a
// timestamp in the same unit as the `now` passed to CacheBuildResult),
// backed by the timestamps index so eviction is exact instead of a
// full-cache sweep. Only keys written by CacheBuildResult on this
// BuildCache carry a timestamp; entries replayed by AttachStore have none
// and are never evicted here.
func (bc *BuildCache) CleanExpiredCache(cutoff int64) int {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	var expired []string
	for key, ts := range bc.timestamps {
		if ts < cutoff {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		bc.policy.Remove(key)
		delete(bc.timestamps, key)
		if bc.store != nil {
			_ = bc.store.Delete(key)
		}
		for target, keys := range bc.targetKeys {
			delete(keys, key)
			if len(keys) == 0 {
				delete(bc.targetKeys, target)
			}
		}
	}
	return len(expired)
}

// CleanTargetCache evicts every cache key CacheBuildResult has stored for
// target on this BuildCache since the index was last reset. Like
// CleanExpiredCache, the source declares but never implements this hook;
// this implementation is backed by the target index maintained by
// CacheBuildResult. Entries replayed by AttachStore are not in the index
// and are not removed.
func (bc *BuildCache) CleanTargetCache(target string) int {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	keys := bc.targetKeys[target]
	n := 0
	for key := range keys {
		bc.policy.Remove(key)
		delete(bc.timestamps, key)
		if bc.store != nil {
			_ = bc.store.Delete(key)
		}
		n++
	}
	delete(bc.targetKeys, target)
	return n
}

// KeysForTarget returns the cache keys currently indexed under target,
// in no particular order.
func (bc *BuildCache) KeysForTarget(target string) []string {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	keys := bc.targetKeys[target]
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	return out
}

// Size returns the number of entries held by the backing policy.
func (bc *BuildCache) Size() int {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.policy.Size()
}
