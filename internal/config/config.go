package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogFileName    = "taskmaster.log"
	DefaultAckDelay       = 3 * time.Second
)

type Keymap struct {
	Quit           string `toml:"quit"`
	NextView       string `toml:"next_view"`
	PrevView       string `toml:"prev_view"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Add            string `toml:"add"`
	Edit           string `toml:"edit"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Search         string `toml:"search"`
	StatusFilter   string `toml:"status_filter"`
	PriorityFilter string `toml:"priority_filter"`
	Export         string `toml:"export"`
	Import         string `toml:"import"`
	Save           string `toml:"save"`
	Report         string `toml:"report"`
}

type Config struct {
	ExportDir string `toml:"export_dir"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	AckDelay  string `toml:"ack_delay"`
	Seed      bool   `toml:"seed"`
	Keys      Keymap `toml:"keys"`
}

// Env holds the environment overrides. Empty values leave the file value.
type Env struct {
	Config    string `env:"TASKMASTER_CONFIG"`
	LogFile   string `env:"TASKMASTER_LOG_FILE"`
	LogLevel  string `env:"TASKMASTER_LOG_LEVEL"`
	ExportDir string `env:"TASKMASTER_EXPORT_DIR"`
}

func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ResolveConfigPath picks the flag value, then TASKMASTER_CONFIG, then the
// default file name.
func ResolveConfigPath(flag string, e Env) string {
	switch {
	case flag != "":
		return flag
	case e.Config != "":
		return e.Config
	default:
		return DefaultConfigFileName
	}
}

// Apply copies the non-empty overrides onto cfg.
func (e Env) Apply(cfg Config) Config {
	if e.LogFile != "" {
		cfg.LogFile = e.LogFile
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.ExportDir != "" {
		cfg.ExportDir = e.ExportDir
	}
	return cfg
}

// LoadOrCreate reads path, writing the default config there first if it does
// not exist. Keys missing from the file keep their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if strings.TrimSpace(cfg.AckDelay) == "" {
		cfg.AckDelay = DefaultAckDelay.String()
	}
	if _, err := time.ParseDuration(cfg.AckDelay); err != nil {
		return cfg, fmt.Errorf("ack_delay %q: %w", cfg.AckDelay, err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// AckDuration is how long a save acknowledgment stays on screen.
func (c Config) AckDuration() time.Duration {
	d, err := time.ParseDuration(c.AckDelay)
	if err != nil || d <= 0 {
		return DefaultAckDelay
	}
	return d
}

func Default() Config {
	return Config{
		ExportDir: ".",
		LogFile:   DefaultLogFileName,
		LogLevel:  "INFO",
		AckDelay:  DefaultAckDelay.String(),
		Seed:      true,
		Keys: Keymap{
			Quit:           "q",
			NextView:       "tab",
			PrevView:       "shift+tab",
			Up:             "k",
			Down:           "j",
			Add:            "a",
			Edit:           "e",
			Toggle:         " ",
			Delete:         "d",
			Confirm:        "enter",
			Cancel:         "esc",
			Search:         "/",
			StatusFilter:   "s",
			PriorityFilter: "p",
			Export:         "x",
			Import:         "i",
			Save:           "ctrl+s",
			Report:         "r",
		},
	}
}
