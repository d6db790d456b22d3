// Package cache provides a bounded, goroutine-safe LRU map.
//
// The notification hub keeps one store per browser session in an LRU so that
// abandoned sessions eventually drop out; the eviction callback closes them.
// Callbacks run after the cache lock is released and may call back into the
// cache.
package cache
