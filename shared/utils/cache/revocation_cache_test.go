package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryRevocationCache(time.Minute, time.Minute)
	defer c.Stop()

	c.Set("revoked.token", true)
	c.Set("live.token", false)

	revoked, ok := c.Get("revoked.token")
	if !ok || !revoked {
		t.Errorf("expected cached revoked=true, got revoked=%v ok=%v", revoked, ok)
	}

	revoked, ok = c.Get("live.token")
	if !ok || revoked {
		t.Errorf("expected cached revoked=false, got revoked=%v ok=%v", revoked, ok)
	}

	if _, ok := c.Get("unknown.token"); ok {
		t.Error("expected miss for a token never cached")
	}
}

func TestMemoryCacheOverwriteRefreshes(t *testing.T) {
	c := NewMemoryRevocationCache(time.Minute, time.Minute)
	defer c.Stop()

	c.Set("some.token", false)
	c.Set("some.token", true)

	revoked, ok := c.Get("some.token")
	if !ok || !revoked {
		t.Errorf("expected overwrite to win, got revoked=%v ok=%v", revoked, ok)
	}
}

func TestMemoryCacheExpiryIsMiss(t *testing.T) {
	// Long sweep interval so expiry is observed lazily in Get, not by the
	// janitor.
	c := NewMemoryRevocationCache(20*time.Millisecond, time.Hour)
	defer c.Stop()

	c.Set("short.lived", true)

	if _, ok := c.Get("short.lived"); !ok {
		t.Fatal("expected hit before TTL elapsed")
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("short.lived"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestMemoryCacheJanitorSweeps(t *testing.T) {
	c := NewMemoryRevocationCache(10*time.Millisecond, 15*time.Millisecond)
	defer c.Stop()

	c.Set("a.token", true)
	c.Set("b.token", false)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		c.mu.RLock()
		remaining := len(c.entries)
		c.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("expected janitor to remove expired entries")
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryRevocationCache(time.Minute, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				token := fmt.Sprintf("token-%d-%d", n, j)
				c.Set(token, j%2 == 0)
				c.Get(token)
			}
		}(i)
	}
	wg.Wait()
}
