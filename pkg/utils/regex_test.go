package utils

import (
	"regexp"
	"testing"
)

func TestLRUCache(t *testing.T) {
	t.Run("Basic operations", func(t *testing.T) {
		cache := NewLRUCache[*regexp.Regexp](3)

		if _, ok := cache.Get("test1"); ok {
			t.Error("Expected cache miss")
		}

		regex1 := regexp.MustCompile("test1")
		cache.Put("test1", regex1)

		if result, ok := cache.Get("test1"); !ok || result != regex1 {
			t.Error("Expected cache hit")
		}
	})

	t.Run("LRU eviction", func(t *testing.T) {
		cache := NewLRUCache[string](2)
		cache.Put("pattern1", "one")
		cache.Put("pattern2", "two")

		// pattern1 is the least recently used once pattern3 arrives
		cache.Put("pattern3", "three")

		if _, ok := cache.Get("pattern1"); ok {
			t.Error("Expected pattern1 to be evicted")
		}
		if _, ok := cache.Get("pattern2"); !ok {
			t.Error("Expected pattern2 to still be cached")
		}
		if _, ok := cache.Get("pattern3"); !ok {
			t.Error("Expected pattern3 to be cached")
		}
		if cache.Len() != 2 {
			t.Errorf("Expected 2 entries, got %d", cache.Len())
		}
	})

	t.Run("Access updates LRU order", func(t *testing.T) {
		cache := NewLRUCache[int](2)
		cache.Put("old", 1)
		cache.Put("new", 2)

		cache.Get("old")
		cache.Put("latest", 3)

		if _, ok := cache.Get("old"); !ok {
			t.Error("Expected 'old' to still be cached after recent access")
		}
		if _, ok := cache.Get("new"); ok {
			t.Error("Expected 'new' to be evicted")
		}
	})

	t.Run("Update existing entry", func(t *testing.T) {
		cache := NewLRUCache[int](2)
		cache.Put("key", 1)
		cache.Put("key", 2)

		if result, ok := cache.Get("key"); !ok || result != 2 {
			t.Error("Expected updated value")
		}
	})
}

func TestRegexCompile(t *testing.T) {
	pattern := `^(?:([0-9]+).*)$`

	regex1, err := RegexCompile(pattern)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	regex2, err := RegexCompile(pattern)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if regex1 != regex2 {
		t.Error("Expected cached regex to be returned")
	}

	if _, err = RegexCompile("[invalid"); err == nil {
		t.Error("Expected error for invalid regex")
	}
}
