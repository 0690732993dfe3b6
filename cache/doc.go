// Package cache memoizes expensive engine results.
//
// A Cache is explicitly constructed and passed to its users. Entries are
// evicted least-recently-used once either the entry limit or the byte
// budget is exceeded. A value that alone exceeds the byte budget is
// rejected without touching existing entries.
//
// Keys are opaque: callers build their own deterministic fingerprints.
// Expiry and hit-count pruning only run when called explicitly.
package cache
