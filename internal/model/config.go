package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// StorageConfig selects and locates the durable key/value storage.
type StorageConfig struct {
	// Backend is either "sqlite" or "keyring".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file. ":memory:" is accepted.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir is where the keyring file backend keeps its items.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme       string `mapstructure:"theme" yaml:"theme"`
	GridColumns int    `mapstructure:"grid_columns" yaml:"grid_columns"`
	FlashMillis int    `mapstructure:"flash_ms" yaml:"flash_ms"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`

	// Seed lists the task names used when nothing has been stored yet.
	Seed []string `mapstructure:"seed" yaml:"seed"`

	// LogFile receives log output while the TUI is running. Empty
	// discards it.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// DefaultSeed is the built-in starter list.
var DefaultSeed = []string{
	"Drag me to reorder",
	"Press x to complete",
	"Press d to delete",
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dragtodo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dragtodo", "config.yaml")
}

// defaultDataPath returns ~/.local/share/dragtodo/todos.db.
func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "todos.db")
	}
	return filepath.Join(home, ".local", "share", "dragtodo", "todos.db")
}

// defaultKeyringDir returns ~/.config/dragtodo/keyring.
func defaultKeyringDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "keyring")
	}
	return filepath.Join(home, ".config", "dragtodo", "keyring")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Path:       defaultDataPath(),
			KeyringDir: defaultKeyringDir(),
		},
		Display: DisplayConfig{
			Theme:       "default",
			GridColumns: 3,
			FlashMillis: 600,
		},
		Seed: append([]string(nil), DefaultSeed...),
	}
}

// newViper returns a viper instance with defaults and DRAGTODO_* env
// overrides applied.
func newViper(path string) *viper.Viper {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.keyring_dir", def.Storage.KeyringDir)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.grid_columns", def.Display.GridColumns)
	v.SetDefault("display.flash_ms", def.Display.FlashMillis)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("DRAGTODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults (with environment overrides) are
// returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Storage.KeyringDir = ExpandHome(cfg.Storage.KeyringDir)
	cfg.LogFile = ExpandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values viper cannot constrain and fills in zero
// values that would break the UI.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendKeyring:
	case "":
		c.Storage.Backend = BackendSQLite
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path must not be empty")
	}
	if c.Display.GridColumns < 1 {
		c.Display.GridColumns = 1
	}
	if c.Display.FlashMillis < 0 {
		c.Display.FlashMillis = 0
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("seed", cfg.Seed)
	v.Set("log_file", cfg.LogFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
