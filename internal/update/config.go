package update

import (
	"time"

	"github.com/sandeepkv93/todoui/internal/config"
	"github.com/sandeepkv93/todoui/internal/querycache"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	RequestTimeout       time.Duration
	CacheTTL             time.Duration
	NotificationLimit    int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		RequestTimeout:       30 * time.Second,
		CacheTTL:             querycache.DefaultTTL,
		NotificationLimit:    40,
	}
}

// RuntimeConfigFrom maps the loaded client configuration onto the TUI.
func RuntimeConfigFrom(cfg config.Client) RuntimeConfig {
	out := DefaultRuntimeConfig()
	out.DesktopNotifications = cfg.UI.DesktopNotifications
	out.RequestTimeout = cfg.API.Timeout
	if cfg.Cache.TTL > 0 {
		out.CacheTTL = cfg.Cache.TTL
	}
	return out
}
