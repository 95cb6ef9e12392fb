package config

// Config is the root configuration document.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Bridge     BridgeConfig     `toml:"bridge"`
	Collectors CollectorsConfig `toml:"collectors"`
	Theme      ThemeConfig      `toml:"theme"`
	Bar        BarConfig        `toml:"bar"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig covers settings shared by bar and daemon modes.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn, error
	LogFile  string `toml:"log_file"`  // rotated; empty disables file logging
	CacheDir string `toml:"cache_dir"`
}

// BridgeConfig locates the hyprspace backend socket.
type BridgeConfig struct {
	SocketPath  string   `toml:"socket_path"`
	DialTimeout Duration `toml:"dial_timeout"`
}

// CollectorsConfig holds the per-collector settings.
type CollectorsConfig struct {
	CPU        CPUCollectorConfig        `toml:"cpu"`
	Battery    BatteryCollectorConfig    `toml:"battery"`
	Clock      ClockCollectorConfig      `toml:"clock"`
	Weather    WeatherCollectorConfig    `toml:"weather"`
	Workspaces WorkspacesCollectorConfig `toml:"workspaces"`
}

// CPUCollectorConfig controls the processor collector.
type CPUCollectorConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// BatteryCollectorConfig controls the battery collector. Poll cadence is
// state-dependent and not configurable here.
type BatteryCollectorConfig struct {
	Enabled   bool   `toml:"enabled"`
	SysfsRoot string `toml:"sysfs_root"` // test override; empty means the OS default
}

// ClockCollectorConfig controls the clock collector.
type ClockCollectorConfig struct {
	Enabled bool `toml:"enabled"`
}

// WeatherCollectorConfig controls the weather collector.
type WeatherCollectorConfig struct {
	Enabled         bool     `toml:"enabled"`
	Interval        Duration `toml:"interval"`
	DefaultLocation string   `toml:"default_location"`
}

// WorkspacesCollectorConfig controls the workspace collector.
type WorkspacesCollectorConfig struct {
	Enabled   bool     `toml:"enabled"`
	Interval  Duration `toml:"interval"`
	Overrides string   `toml:"overrides"` // path to the YAML overrides file
}

// ThemeConfig selects and extends the color theme.
type ThemeConfig struct {
	Name string `toml:"name"`

	// File points at a user theme TOML registered at startup.
	File string `toml:"file"`
}

// BarConfig controls the bar presentation.
type BarConfig struct {
	// Layout names a slot preset; see LayoutPreset.
	Layout string `toml:"layout"`

	// Unicode enables icon glyphs; off falls back to ASCII.
	Unicode bool `toml:"unicode"`

	// TitleWidth is the center slot's minimum width in cells.
	TitleWidth int `toml:"title_width"`
}

// DaemonConfig controls the headless collector daemon.
type DaemonConfig struct {
	SocketPath   string   `toml:"socket_path"` // control socket, distinct from the bridge
	PidFile      string   `toml:"pid_file"`
	PollInterval Duration `toml:"poll_interval"` // cache persistence cadence
	Retention    Duration `toml:"retention"`     // history kept for sparklines
}
