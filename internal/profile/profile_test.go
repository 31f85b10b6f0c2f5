package profile

import (
	"testing"
	"time"
)

func TestValidateDefaults(t *testing.T) {
	p := &Profile{Mode: "dev", Port: 8080, Driver: "memory"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.CacheTTLMillis != 300_000 {
		t.Errorf("expected default TTL of 300000ms, got %d", p.CacheTTLMillis)
	}
	if p.CacheTTL() != 5*time.Minute {
		t.Errorf("expected 5m TTL, got %s", p.CacheTTL())
	}
	if p.CacheCleanupMillis != 60_000 {
		t.Errorf("expected default cleanup of 60000ms, got %d", p.CacheCleanupMillis)
	}
}

func TestValidateModeFallback(t *testing.T) {
	p := &Profile{Mode: "bogus", Port: 8080}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.Mode != "demo" {
		t.Errorf("unknown mode should fall back to demo, got %q", p.Mode)
	}
	if p.Driver != "memory" {
		t.Errorf("demo mode should default to the memory driver, got %q", p.Driver)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
	}{
		{"BadPort", Profile{Mode: "dev", Port: 0, Driver: "memory"}},
		{"UnknownDriver", Profile{Mode: "dev", Port: 8080, Driver: "dynamo"}},
		{"MongoWithoutDSN", Profile{Mode: "prod", Port: 8080, Driver: "mongo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PLACEDEX_DSN", "mongodb://db.internal:27017")
	t.Setenv("PLACEDEX_SOURCE_URL", "https://source.internal")
	t.Setenv("PLACEDEX_CACHE_TTL_MS", "1500")

	p := &Profile{}
	p.FromEnv()
	if p.DSN != "mongodb://db.internal:27017" {
		t.Errorf("DSN not read from env, got %q", p.DSN)
	}
	if p.SourceURL != "https://source.internal" {
		t.Errorf("SourceURL not read from env, got %q", p.SourceURL)
	}
	if p.CacheTTLMillis != 1500 {
		t.Errorf("CacheTTLMillis not read from env, got %d", p.CacheTTLMillis)
	}
}

func TestFromEnvDoesNotOverrideFlags(t *testing.T) {
	t.Setenv("PLACEDEX_DSN", "mongodb://env:27017")

	p := &Profile{DSN: "mongodb://flag:27017"}
	p.FromEnv()
	if p.DSN != "mongodb://flag:27017" {
		t.Errorf("flag value must win over environment, got %q", p.DSN)
	}
}
