package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

const (
	KeyRootFolder     = "root_folder"
	KeyShowHidden     = "show_hidden"
	KeyNoteExtension  = "note_extension"
	KeySearchLimit    = "search_limit"
	KeySearchDebounce = "search_debounce"
	KeyCoalesceWindow = "coalesce_window"
	KeyListingTTL     = "listing_ttl"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

var validLogFormats = []string{"text", "json"}

type Config struct {
	RootFolder     string        `yaml:"root_folder"     mapstructure:"root_folder"`
	ShowHidden     bool          `yaml:"show_hidden"     mapstructure:"show_hidden"`
	NoteExtension  string        `yaml:"note_extension"  mapstructure:"note_extension"`
	SearchLimit    int           `yaml:"search_limit"    mapstructure:"search_limit"`
	SearchDebounce time.Duration `yaml:"search_debounce" mapstructure:"search_debounce"`
	CoalesceWindow time.Duration `yaml:"coalesce_window" mapstructure:"coalesce_window"`
	ListingTTL     time.Duration `yaml:"listing_ttl"     mapstructure:"listing_ttl"`
	LogLevel       string        `yaml:"log_level"       mapstructure:"log_level"`
	LogFormat      string        `yaml:"log_format"      mapstructure:"log_format"`

	path string
	v    *viper.Viper
}

// fileConfig is the on-disk shape. Durations are written as strings so the
// file stays readable.
type fileConfig struct {
	RootFolder     string `yaml:"root_folder"`
	ShowHidden     bool   `yaml:"show_hidden"`
	NoteExtension  string `yaml:"note_extension"`
	SearchLimit    int    `yaml:"search_limit"`
	SearchDebounce string `yaml:"search_debounce"`
	CoalesceWindow string `yaml:"coalesce_window"`
	ListingTTL     string `yaml:"listing_ttl"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func DefaultRoot(homeDir string) string {
	return filepath.Join(homeDir, constants.DefaultRootDir)
}

// Load resolves configuration from defaults, the config file, a .env file in
// the working directory and SIDENOTES_* environment variables, in increasing
// order of precedence. A missing config file is not an error. When cfgFile is
// empty the file is looked up under homeDir.
func Load(homeDir, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, homeDir)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := cfgFile
	if path == "" {
		path = GetConfigPath(homeDir)
	}
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg, err := decode(v, homeDir)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.v = v

	return cfg, nil
}

// Default returns the configuration used when nothing has been set, bound to
// the default config path under homeDir.
func Default(homeDir string) *Config {
	return &Config{
		RootFolder:     DefaultRoot(homeDir),
		NoteExtension:  constants.NoteExt,
		SearchLimit:    constants.SearchLimit,
		SearchDebounce: constants.SearchDebounce,
		CoalesceWindow: constants.CoalesceWindow,
		LogLevel:       "info",
		LogFormat:      "text",
		path:           GetConfigPath(homeDir),
	}
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyRootFolder, DefaultRoot(homeDir))
	v.SetDefault(KeyShowHidden, false)
	v.SetDefault(KeyNoteExtension, constants.NoteExt)
	v.SetDefault(KeySearchLimit, constants.SearchLimit)
	v.SetDefault(KeySearchDebounce, constants.SearchDebounce)
	v.SetDefault(KeyCoalesceWindow, constants.CoalesceWindow)
	v.SetDefault(KeyListingTTL, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

func decode(v *viper.Viper, homeDir string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.RootFolder = expandHome(strings.TrimSpace(cfg.RootFolder), homeDir)
	if cfg.RootFolder != "" {
		abs, err := filepath.Abs(cfg.RootFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root folder: %w", err)
		}
		cfg.RootFolder = pathutil.NormalizePath(abs)
	}

	cfg.NoteExtension = strings.TrimSpace(cfg.NoteExtension)
	if cfg.NoteExtension != "" && !strings.HasPrefix(cfg.NoteExtension, ".") {
		cfg.NoteExtension = "." + cfg.NoteExtension
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

func (cfg *Config) Validate() error {
	if cfg.RootFolder == "" {
		return initErrorf("%s must not be empty", KeyRootFolder)
	}
	if len(cfg.NoteExtension) < 2 || strings.ContainsAny(cfg.NoteExtension, `/\`) {
		return initErrorf("%s %q is not a file extension", KeyNoteExtension, cfg.NoteExtension)
	}
	if cfg.SearchLimit <= 0 {
		return initErrorf("%s must be positive, got %d", KeySearchLimit, cfg.SearchLimit)
	}
	if cfg.SearchDebounce < 0 {
		return initErrorf("%s must not be negative", KeySearchDebounce)
	}
	if cfg.CoalesceWindow <= 0 {
		return initErrorf("%s must be positive", KeyCoalesceWindow)
	}
	if cfg.ListingTTL < 0 {
		return initErrorf("%s must not be negative", KeyListingTTL)
	}
	if cfg.LogLevel != "" {
		if _, err := parseLevel(cfg.LogLevel); err != nil {
			return initErrorf("%s %q is not a log level", KeyLogLevel, cfg.LogLevel)
		}
	}
	if cfg.LogFormat != "" && !lo.Contains(validLogFormats, cfg.LogFormat) {
		return initErrorf("%s must be one of %s", KeyLogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// Path returns the config file this configuration was loaded from or will be
// saved to.
func (cfg *Config) Path() string {
	return cfg.path
}

func (cfg *Config) SetPath(path string) {
	cfg.path = path
}

// Save writes the configuration to its path, creating the directory if needed.
func (cfg *Config) Save() error {
	if cfg.path == "" {
		return errors.New("config path is not set")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg.toFile())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(cfg.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (cfg *Config) toFile() fileConfig {
	return fileConfig{
		RootFolder:     cfg.RootFolder,
		ShowHidden:     cfg.ShowHidden,
		NoteExtension:  cfg.NoteExtension,
		SearchLimit:    cfg.SearchLimit,
		SearchDebounce: cfg.SearchDebounce.String(),
		CoalesceWindow: cfg.CoalesceWindow.String(),
		ListingTTL:     cfg.ListingTTL.String(),
		LogLevel:       cfg.LogLevel,
		LogFormat:      cfg.LogFormat,
	}
}

// EnsureRoot creates the notes root if it does not exist yet.
func (cfg *Config) EnsureRoot() error {
	info, err := os.Stat(cfg.RootFolder)
	if err == nil {
		if !info.IsDir() {
			return initErrorf("root folder %s is not a directory", cfg.RootFolder)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat root folder: %w", err)
	}
	if err := os.MkdirAll(cfg.RootFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create root folder: %w", err)
	}
	return nil
}

// Watch re-decodes the configuration whenever the config file changes and
// hands the result to fn. It is a no-op when the file does not exist.
func (cfg *Config) Watch(homeDir string, fn func(*Config, error)) bool {
	if cfg.v == nil || cfg.path == "" {
		return false
	}
	if _, err := os.Stat(cfg.path); err != nil {
		return false
	}

	v := cfg.v
	path := cfg.path
	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		next, err := decode(v, homeDir)
		if next != nil {
			next.path = path
			next.v = v
		}
		fn(next, err)
	})
	v.WatchConfig()
	return true
}
