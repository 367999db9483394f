// Package config loads noor's configuration from defaults, a YAML file,
// an optional .env file and NOOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName   = "noor"
	envPrefix = "NOOR"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Prayer  PrayerConfig  `mapstructure:"prayer"`
	Quran   QuranConfig   `mapstructure:"quran"`
	Hadith  HadithConfig  `mapstructure:"hadith"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds upstream endpoints and HTTP behavior
type APIConfig struct {
	QuranURL   string        `mapstructure:"quran_url"`
	AladhanURL string        `mapstructure:"aladhan_url"`
	HadithURL  string        `mapstructure:"hadith_url"`
	GeocodeURL string        `mapstructure:"geocode_url"`
	IPGeoURL   string        `mapstructure:"ipgeo_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"`
}

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Backend string      `mapstructure:"backend"` // "bolt", "memory" or "redis"
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig overrides per-category freshness. Zero keeps the built-in TTL.
type CacheConfig struct {
	Surahs      time.Duration `mapstructure:"surahs_ttl"`
	Ayahs       time.Duration `mapstructure:"ayahs_ttl"`
	PrayerTimes time.Duration `mapstructure:"prayer_times_ttl"`
	Hadiths     time.Duration `mapstructure:"hadiths_ttl"`
}

// PrayerConfig holds the calculation method and an optional fixed location
type PrayerConfig struct {
	Method    int     `mapstructure:"method"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	City      string  `mapstructure:"city"`
}

// HasLocation reports whether a fixed location is configured
func (p PrayerConfig) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// QuranConfig selects editions
type QuranConfig struct {
	TextEdition        string `mapstructure:"text_edition"`
	TranslationEdition string `mapstructure:"translation_edition"`
}

// HadithConfig holds hadith paging settings
type HadithConfig struct {
	Limit int `mapstructure:"limit"`
}

// PlayerConfig selects the external player for recitations. An empty
// command tries the known players and then the system default.
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme      string `mapstructure:"theme"`       // "dark" or "light"
	DefaultTab string `mapstructure:"default_tab"` // "home", "quran", "hadith", "prayer" or "settings"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			QuranURL:   "https://api.alquran.cloud",
			AladhanURL: "https://api.aladhan.com",
			HadithURL:  "https://api.hadith.gading.dev",
			GeocodeURL: "https://api.bigdatacloud.net",
			IPGeoURL:   "https://ipapi.co",
			Timeout:    15 * time.Second,
			Retries:    2,
		},
		Store: StoreConfig{
			Backend: "bolt",
			Dir:     defaultDataPath(),
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Prayer: PrayerConfig{
			Method: 2,
		},
		Quran: QuranConfig{
			TextEdition:        "quran-uthmani",
			TranslationEdition: "ar.muyassar",
		},
		Hadith: HadithConfig{
			Limit: 20,
		},
		UI: UIConfig{
			Theme:      "dark",
			DefaultTab: "home",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), appName+".log")
}

// defaultDataPath returns the directory holding the database and log
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// Loader reads and writes the configuration file
type Loader struct {
	v         *viper.Viper
	configDir string
	envFile   string
}

// NewLoader creates a loader rooted at configDir. An empty configDir uses
// DefaultConfigDir; an empty envFile uses ".env" in the working directory.
func NewLoader(configDir, envFile string) *Loader {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if envFile == "" {
		envFile = ".env"
	}
	return &Loader{v: viper.New(), configDir: configDir, envFile: envFile}
}

// Load loads configuration from the default locations
func Load() (*Config, error) {
	return NewLoader("", "").Load()
}

// Load applies defaults, the .env file, config.yaml and NOOR_* variables in that order
func (l *Loader) Load() (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", l.envFile, err)
	}

	cfg := DefaultConfig()
	setDefaults(l.v, cfg)

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(l.configDir)
	l.v.AddConfigPath(".")

	// NOOR_STORE_BACKEND overrides store.backend
	l.v.SetEnvPrefix(envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFile returns the file Load read, or where SaveLocation will write
func (l *Loader) ConfigFile() string {
	if used := l.v.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(l.configDir, "config.yaml")
}

// SaveLocation writes a fixed prayer location back to the config file
func (l *Loader) SaveLocation(latitude, longitude float64, city string) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	l.v.Set("prayer.latitude", latitude)
	l.v.Set("prayer.longitude", longitude)
	l.v.Set("prayer.city", city)

	if err := l.v.WriteConfigAs(l.ConfigFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "bolt", "memory", "redis":
	default:
		return fmt.Errorf("invalid store.backend %q (want bolt, memory or redis)", c.Store.Backend)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid ui.theme %q (want dark or light)", c.UI.Theme)
	}
	if c.Prayer.Latitude < -90 || c.Prayer.Latitude > 90 || c.Prayer.Longitude < -180 || c.Prayer.Longitude > 180 {
		return fmt.Errorf("invalid prayer location %.4f, %.4f", c.Prayer.Latitude, c.Prayer.Longitude)
	}
	if c.Hadith.Limit < 0 {
		return fmt.Errorf("invalid hadith.limit %d", c.Hadith.Limit)
	}
	return nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.quran_url", cfg.API.QuranURL)
	v.SetDefault("api.aladhan_url", cfg.API.AladhanURL)
	v.SetDefault("api.hadith_url", cfg.API.HadithURL)
	v.SetDefault("api.geocode_url", cfg.API.GeocodeURL)
	v.SetDefault("api.ipgeo_url", cfg.API.IPGeoURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.retries", cfg.API.Retries)

	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("store.redis.addr", cfg.Store.Redis.Addr)
	v.SetDefault("store.redis.password", cfg.Store.Redis.Password)
	v.SetDefault("store.redis.db", cfg.Store.Redis.DB)

	v.SetDefault("cache.surahs_ttl", cfg.Cache.Surahs)
	v.SetDefault("cache.ayahs_ttl", cfg.Cache.Ayahs)
	v.SetDefault("cache.prayer_times_ttl", cfg.Cache.PrayerTimes)
	v.SetDefault("cache.hadiths_ttl", cfg.Cache.Hadiths)

	v.SetDefault("prayer.method", cfg.Prayer.Method)
	v.SetDefault("prayer.latitude", cfg.Prayer.Latitude)
	v.SetDefault("prayer.longitude", cfg.Prayer.Longitude)
	v.SetDefault("prayer.city", cfg.Prayer.City)

	v.SetDefault("quran.text_edition", cfg.Quran.TextEdition)
	v.SetDefault("quran.translation_edition", cfg.Quran.TranslationEdition)

	v.SetDefault("hadith.limit", cfg.Hadith.Limit)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)

	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.default_tab", cfg.UI.DefaultTab)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
