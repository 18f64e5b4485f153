package utils

import (
	"container/list"
	"regexp"
	"sync"
)

// lruEntry represents an entry in the LRU cache
type lruEntry[V any] struct {
	key   string
	value V
	node  *list.Element
}

// LRUCache implements a thread-safe LRU cache keyed by pattern strings. It backs the
// compiled regex cache below and the compiled date-format cache in pkg/pattern.
type LRUCache[V any] struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*lruEntry[V]
	lru      *list.List
}

/**************************************************************************************************
** NewLRUCache creates a new LRU cache for compiled patterns.
**
** @param capacity - Maximum number of cached patterns before evicting LRU
** @return *LRUCache[V] - Initialized LRU cache instance
**************************************************************************************************/
func NewLRUCache[V any](capacity int) *LRUCache[V] {
	return &LRUCache[V]{
		capacity: capacity,
		cache:    make(map[string]*lruEntry[V]),
		lru:      list.New(),
	}
}

/**************************************************************************************************
** Get retrieves a compiled value from the cache and marks it as most recently used.
**
** @param pattern - Pattern string key
** @return V - Cached value if present
** @return bool - True if found in cache
**************************************************************************************************/
func (c *LRUCache[V]) Get(pattern string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[pattern]; ok {
		c.lru.MoveToFront(entry.node)
		return entry.value, true
	}
	var zero V
	return zero, false
}

/**************************************************************************************************
** Put inserts or updates a value in the cache, evicting the LRU entry if at capacity.
**
** @param pattern - Pattern string key
** @param value - Compiled value to store
**************************************************************************************************/
func (c *LRUCache[V]) Put(pattern string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[pattern]; ok {
		entry.value = value
		c.lru.MoveToFront(entry.node)
		return
	}

	if len(c.cache) >= c.capacity {
		c.evictLRU()
	}

	node := c.lru.PushFront(pattern)
	c.cache[pattern] = &lruEntry[V]{
		key:   pattern,
		value: value,
		node:  node,
	}
}

// Len returns the number of cached entries.
func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *LRUCache[V]) evictLRU() {
	node := c.lru.Back()
	if node == nil {
		return
	}
	delete(c.cache, node.Value.(string))
	c.lru.Remove(node)
}

// Template segments are compiled once per run, but explain and tests compile the same
// templates repeatedly.
var regexCache = NewLRUCache[*regexp.Regexp](256)

/**************************************************************************************************
** RegexCompile compiles a regular expression pattern and caches the result. Template segment
** regexes are anchored by the caller before they get here, so the cache key is the exact
** expression handed to regexp.Compile.
**
** @param pattern - The regex pattern to compile
** @return *regexp.Regexp - Compiled regex
** @return error - Compilation error, if any
**************************************************************************************************/
func RegexCompile(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	regexCache.Put(pattern, re)
	return re, nil
}
