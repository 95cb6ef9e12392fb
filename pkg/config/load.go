package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/pulsebar/config.toml
//  2. ~/.config/pulsebar/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgCacheHome(home), "pulsebar")
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			CacheDir: cacheDir,
		},
		Bridge: BridgeConfig{
			SocketPath:  filepath.Join(runtimeDir, "hyprspace.sock"),
			DialTimeout: Duration{3 * time.Second},
		},
		Collectors: CollectorsConfig{
			CPU: CPUCollectorConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
			},
			Battery: BatteryCollectorConfig{
				Enabled: true,
			},
			Clock: ClockCollectorConfig{
				Enabled: true,
			},
			Weather: WeatherCollectorConfig{
				Enabled:  true,
				Interval: Duration{10 * time.Minute},
			},
			Workspaces: WorkspacesCollectorConfig{
				Enabled:  true,
				Interval: Duration{5 * time.Second},
				Overrides: filepath.Join(xdgConfigHome(home),
					"pulsebar", "workspaces.yaml"),
			},
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Bar: BarConfig{
			Layout:     "full",
			Unicode:    true,
			TitleWidth: 40,
		},
		Daemon: DaemonConfig{
			SocketPath:   filepath.Join(runtimeDir, "pulsebar.sock"),
			PidFile:      filepath.Join(runtimeDir, "pulsebar.pid"),
			PollInterval: Duration{time.Minute},
			Retention:    Duration{10 * time.Minute},
		},
	}
}

// DefaultPath returns the primary config file location, whether or not the
// file exists. Used by the hot-reload watcher.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// Validate rejects configurations the runtime cannot honor.
func (c *Config) Validate() error {
	switch c.General.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.General.LogLevel)
	}
	if c.Bridge.SocketPath == "" {
		return fmt.Errorf("config: bridge.socket_path must not be empty")
	}
	if c.Bar.TitleWidth < 0 {
		return fmt.Errorf("config: bar.title_width must not be negative")
	}
	if _, ok := layoutPresets[c.Bar.Layout]; c.Bar.Layout != "" && !ok {
		return fmt.Errorf("config: unknown bar.layout %q", c.Bar.Layout)
	}
	return nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PULSEBAR_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("PULSEBAR_SOCKET"); v != "" {
		cfg.Bridge.SocketPath = v
	}
	if v := os.Getenv("PULSEBAR_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("PULSEBAR_LAYOUT"); v != "" {
		cfg.Bar.Layout = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "pulsebar", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "pulsebar", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
