package fetcher

import (
	"os"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	url := "https://example.com/page"
	if got := cache.Lookup(url); got != nil {
		t.Fatalf("Lookup before Store = %+v, want nil", got)
	}

	cache.Store(url, &FetchResult{HTML: "<html>hi</html>", FinalURL: url})
	got := cache.Lookup(url)
	if got == nil {
		t.Fatal("Lookup after Store missed")
	}
	if got.HTML != "<html>hi</html>" || got.FinalURL != url {
		t.Errorf("cached page = %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	url := "https://example.com/stale"
	cache.Store(url, &FetchResult{HTML: "old"})
	time.Sleep(time.Millisecond)

	if got := cache.Lookup(url); got != nil {
		t.Errorf("expired entry served: %+v", got)
	}
}

func TestCacheDisabled(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	cache.Store("https://example.com", &FetchResult{HTML: "x"})
	if got := cache.Lookup("https://example.com"); got != nil {
		t.Errorf("disabled cache served: %+v", got)
	}
}

func TestCacheCorruptEntryMisses(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	url := "https://example.com/corrupt"
	if err := os.WriteFile(cache.path(url), []byte("not msgpack"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := cache.Lookup(url); got != nil {
		t.Errorf("corrupt entry served: %+v", got)
	}
}
