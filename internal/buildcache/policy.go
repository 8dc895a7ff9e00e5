// Package buildcache implements the target x command x dependency-set
// build-result cache: a content-hash-keyed map layered on top of a
// pluggable bounded replacement policy (LRU or LFU).
package buildcache

// Policy abstracts the bounded key->value replacement strategy BuildCache
// is layered on. *lru.Cache and *lfu.Cache both already satisfy it; a
// strategy swap at runtime (see BuildCache.SetStrategy) just constructs a
// fresh Policy and discards the old one, never migrating entries.
type Policy interface {
	Put(key, value string) bool
	Get(key string) string
	Contains(key string) bool
	Remove(key string)
	Size() int
	Clear()
	SetMaxSize(n int)
}
