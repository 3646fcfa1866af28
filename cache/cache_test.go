package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	CACHE_PATH = filepath.Join(t.TempDir(), "cache.json")

	if _, found := GetCache("abi:1:0xabc"); found {
		t.Fatalf("empty cache must miss")
	}
	if err := SetCache("abi:1:0xABC", `[{"type":"function"}]`); err != nil {
		t.Fatalf("set: %s", err)
	}
	// keys are case insensitive
	value, found := GetCache("abi:1:0xabc")
	if !found {
		t.Fatalf("expected a hit")
	}
	if value != `[{"type":"function"}]` {
		t.Errorf("got %q", value)
	}
	if _, err := os.Stat(CACHE_PATH); err != nil {
		t.Errorf("cache file should exist after SetCache: %s", err)
	}
}
