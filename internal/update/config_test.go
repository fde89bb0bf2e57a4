package update

import (
	"testing"
	"time"

	"github.com/sandeepkv93/todoui/internal/config"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DesktopNotifications {
		t.Fatal("desktop notifications should be off by default")
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.NotificationLimit != 40 {
		t.Fatalf("unexpected notification limit: %+v", cfg)
	}
}

func TestRuntimeConfigFromClient(t *testing.T) {
	var c config.Client
	c.API.Timeout = 5 * time.Second
	c.Cache.TTL = time.Minute
	c.UI.DesktopNotifications = true

	cfg := RuntimeConfigFrom(c)
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications from config")
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected config mapping: %+v", cfg)
	}

	c.Cache.TTL = 0
	c.API.Timeout = 0
	cfg = RuntimeConfigFrom(c)
	if cfg.CacheTTL != 5*time.Minute || cfg.RequestTimeout != 0 {
		t.Fatalf("expected default ttl and disabled timeout, got %+v", cfg)
	}
}
