package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "taskdash"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskdash.db"
	DefaultLogName        = "taskdash.log"
	EnvConfigPath         = "TASKDASH_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Detail        string `toml:"detail"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	NextField     string `toml:"next_field"`
	SwitchView    string `toml:"switch_view"`
	CycleCategory string `toml:"cycle_category"`
	CycleFilter   string `toml:"cycle_filter"`
	RangeDay      string `toml:"range_day"`
	RangeWeek     string `toml:"range_week"`
	RangeMonth    string `toml:"range_month"`
	RangeCustom   string `toml:"range_custom"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultRange    string `toml:"default_range"`
	SeedSampleTasks bool   `toml:"seed_sample_tasks"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath prefers $TASKDASH_CONFIG, then the user config dir,
// then the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there on first launch.
// Relative db and log paths are resolved next to the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolvePaths(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg.resolvePaths(path), nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.DefaultFilter = strings.ToLower(strings.TrimSpace(c.DefaultFilter))
	switch c.DefaultFilter {
	case "all", "active", "completed":
	default:
		c.DefaultFilter = def.DefaultFilter
	}
	c.DefaultRange = strings.ToLower(strings.TrimSpace(c.DefaultRange))
	switch c.DefaultRange {
	case "day", "week", "month", "custom":
	default:
		c.DefaultRange = def.DefaultRange
	}
	fillKeys(&c.Keys, def.Keys)
}

func fillKeys(k *Keymap, def Keymap) {
	fields := []struct {
		dst *string
		val string
	}{
		{&k.Quit, def.Quit}, {&k.Add, def.Add}, {&k.Up, def.Up}, {&k.Down, def.Down},
		{&k.Toggle, def.Toggle}, {&k.Delete, def.Delete}, {&k.Detail, def.Detail},
		{&k.Confirm, def.Confirm}, {&k.Cancel, def.Cancel}, {&k.NextField, def.NextField},
		{&k.SwitchView, def.SwitchView}, {&k.CycleCategory, def.CycleCategory},
		{&k.CycleFilter, def.CycleFilter}, {&k.RangeDay, def.RangeDay},
		{&k.RangeWeek, def.RangeWeek}, {&k.RangeMonth, def.RangeMonth},
		{&k.RangeCustom, def.RangeCustom},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.val
		}
	}
}

func (c Config) resolvePaths(configPath string) Config {
	base := filepath.Dir(configPath)
	if !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(base, c.LogFile)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		DBPath:          DefaultDBName,
		DefaultFilter:   "all",
		DefaultRange:    "week",
		SeedSampleTasks: true,
		LogFile:         DefaultLogName,
		LogLevel:        "info",
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Detail:        "enter",
			Confirm:       "enter",
			Cancel:        "esc",
			NextField:     "tab",
			SwitchView:    "v",
			CycleCategory: "c",
			CycleFilter:   "f",
			RangeDay:      "1",
			RangeWeek:     "2",
			RangeMonth:    "3",
			RangeCustom:   "4",
		},
	}
}
