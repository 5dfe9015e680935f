package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()
	c := GetConfig()

	if c.ServerPort != "3000" {
		t.Errorf("expected default port 3000, got %s", c.ServerPort)
	}
	if c.CacheBackend != "memory" {
		t.Errorf("expected default cache backend memory, got %s", c.CacheBackend)
	}
	if c.GetCacheTTLMinutes() != 10 {
		t.Errorf("expected default cache TTL 10, got %d", c.GetCacheTTLMinutes())
	}
	if c.GetCacheSweepMinutes() != 2 {
		t.Errorf("expected default sweep interval 2, got %d", c.GetCacheSweepMinutes())
	}
	if c.GetLoginRateLimitMaxAttempts() != 3 {
		t.Errorf("expected default login attempt limit 3, got %d", c.GetLoginRateLimitMaxAttempts())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL_MINUTES", "30")
	LoadConfig()
	c := GetConfig()

	if c.ServerPort != "8080" {
		t.Errorf("expected port 8080, got %s", c.ServerPort)
	}
	if c.CacheBackend != "redis" {
		t.Errorf("expected cache backend redis, got %s", c.CacheBackend)
	}
	if c.GetCacheTTLMinutes() != 30 {
		t.Errorf("expected cache TTL 30, got %d", c.GetCacheTTLMinutes())
	}
}

func TestIntGettersFallBackOnGarbage(t *testing.T) {
	c := &Config{
		CacheTTLMinutes:             "not-a-number",
		CacheSweepMinutes:           "",
		LoginRateLimitMaxAttempts:   "-",
		LoginRateLimitWindowMinutes: "90",
	}

	if c.GetCacheTTLMinutes() != 10 {
		t.Errorf("expected fallback TTL 10, got %d", c.GetCacheTTLMinutes())
	}
	if c.GetCacheSweepMinutes() != 2 {
		t.Errorf("expected fallback sweep 2, got %d", c.GetCacheSweepMinutes())
	}
	if c.GetLoginRateLimitMaxAttempts() != 3 {
		t.Errorf("expected fallback attempts 3, got %d", c.GetLoginRateLimitMaxAttempts())
	}
	if c.GetLoginRateLimitWindowMinutes() != 90 {
		t.Errorf("expected parsed window 90, got %d", c.GetLoginRateLimitWindowMinutes())
	}
}
