package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

const (
	appName    = "mindflerm"
	envPrefix  = "MINDFLERM"
	configFile = "config.toml"
)

// ErrExists is returned by Init when the config file is already there.
var ErrExists = errors.New("config file already exists")

// Config holds mindflerm configuration.
type Config struct {
	UI     UIConfig     `toml:"ui" mapstructure:"ui"`
	Export ExportConfig `toml:"export" mapstructure:"export"`
	Log    LogConfig    `toml:"log" mapstructure:"log"`
}

// UIConfig controls the editor.
type UIConfig struct {
	Confirmations bool   `toml:"confirmations" mapstructure:"confirmations"`
	PanStep       int    `toml:"pan_step" mapstructure:"pan_step"` // cells per pan key press
	RootText      string `toml:"root_text" mapstructure:"root_text"`
}

// ExportConfig controls where exported pictures go.
type ExportConfig struct {
	Directory string `toml:"directory" mapstructure:"directory"`
}

// LogConfig controls the debug log. An empty File disables logging.
type LogConfig struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Confirmations: true,
			PanStep:       4,
			RootText:      "Central Idea",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns the mindflerm config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), configFile)
}

// Load reads the config at path (the default location when empty), applying
// MINDFLERM_* environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	def := Default()
	v := viper.New()
	v.SetDefault("ui.confirmations", def.UI.Confirmations)
	v.SetDefault("ui.pan_step", def.UI.PanStep)
	v.SetDefault("ui.root_text", def.UI.RootText)
	v.SetDefault("export.directory", def.Export.Directory)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)

	v.SetConfigType("toml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.UI.PanStep <= 0 {
		c.UI.PanStep = Default().UI.PanStep
	}
	if strings.TrimSpace(c.UI.RootText) == "" {
		c.UI.RootText = Default().UI.RootText
	}
	c.Export.Directory = expandHome(c.Export.Directory)
	c.Log.File = expandHome(c.Log.File)
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Init writes the default config to path unless a file is already there and
// force is false.
func Init(path string, force bool) error {
	if path == "" {
		path = Path()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	return Save(path, Default())
}

// ExportPath resolves filename against the export directory, creating the
// directory when it is set. Absolute filenames are returned unchanged.
func (c *Config) ExportPath(filename string) (string, error) {
	filename = expandHome(filename)
	if c.Export.Directory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}

func expandHome(p string) string {
	if p == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
