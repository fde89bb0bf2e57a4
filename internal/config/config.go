// Package config loads the client and server settings from an optional TOML
// file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ClientEnvPrefix = "TODOUI"
	ServerEnvPrefix = "TODOAPI"
)

// Client holds settings for the terminal client.
type Client struct {
	API   APIConfig   `mapstructure:"api"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
	UI    UIConfig    `mapstructure:"ui"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type UIConfig struct {
	DesktopNotifications bool `mapstructure:"desktop_notifications"`
}

// Server holds settings for the development backend.
type Server struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoadClient reads the client config. An empty path falls back to
// $TODOUI_CONFIG, then ~/.config/todoui/config.toml. Only an explicitly named
// file has to exist.
func LoadClient(path string) (Client, error) {
	v := viper.New()
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.desktop_notifications", false)

	if err := read(v, ClientEnvPrefix, path, "todoui"); err != nil {
		return Client{}, err
	}

	var c Client
	if err := v.Unmarshal(&c); err != nil {
		return Client{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("config: api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("config: api.timeout must not be negative")
	}
	return nil
}

// LoadServer reads the backend config. An empty path falls back to
// $TODOAPI_CONFIG, then ~/.config/todoapi/config.toml.
func LoadServer(path string) (Server, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.path", "todoapi.db")
	v.SetDefault("log.level", "info")

	if err := read(v, ServerEnvPrefix, path, "todoapi"); err != nil {
		return Server{}, err
	}

	var s Server
	if err := v.Unmarshal(&s); err != nil {
		return Server{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(s.Server.Addr) == "" {
		return Server{}, errors.New("config: server.addr is required")
	}
	if strings.TrimSpace(s.Database.Path) == "" {
		return Server{}, errors.New("config: database.path is required")
	}
	return s, nil
}

func read(v *viper.Viper, prefix, path, app string) error {
	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(prefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, app))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func defaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "todoui.log")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "todoui", "todoui.log")
}
