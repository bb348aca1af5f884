package config

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Namespace != "graft" {
		t.Fatalf("expected default namespace graft, got %q", cfg.Namespace)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis to be disabled by default, got %q", cfg.RedisAddr)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GRAFT_NAMESPACE", "srv")
	t.Setenv("GRAFT_RATE_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Namespace != "srv" {
		t.Fatalf("expected namespace srv, got %q", cfg.Namespace)
	}
	if cfg.Limit() != rate.Inf {
		t.Fatalf("expected unlimited rate, got %v", cfg.Limit())
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("GRAFT_RATE_BURST", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
