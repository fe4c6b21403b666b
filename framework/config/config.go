package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// Config is the central typed configuration struct.
// Defaults come from the `default` struct tags; the environment wins over them.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
}

type AppConfig struct {
	Name  string `default:"GoInject"`
	Env   string `default:"local"` // local | production | testing
	Debug bool   `default:"true"`
	URL   string `default:"http://localhost"`
	Port  string `default:"8000"`
}

type LogConfig struct {
	Level  string `default:"info"` // debug | info | warn | error
	Format string `default:"text"` // text | json
}

// StorageConfig selects where the repositories keep their data.
type StorageConfig struct {
	Driver string `default:"memory"` // memory | file
	Path   string `default:"~/.go-inject/storage"`
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
)

// IsFile reports whether repositories persist to disk.
func (s StorageConfig) IsFile() bool { return strings.EqualFold(s.Driver, DriverFile) }

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// only reachable with a malformed default tag
		panic(err)
	}

	cfg.App.Name = env("APP_NAME", cfg.App.Name)
	cfg.App.Env = env("APP_ENV", cfg.App.Env)
	cfg.App.Debug = envBool("APP_DEBUG", cfg.App.Debug)
	cfg.App.URL = env("APP_URL", cfg.App.URL)
	cfg.App.Port = env("APP_PORT", cfg.App.Port)

	cfg.Log.Level = env("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = env("LOG_FORMAT", cfg.Log.Format)

	cfg.Storage.Driver = env("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = expand(env("STORAGE_PATH", cfg.Storage.Path))

	return cfg
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// expand resolves a leading ~; the raw path is kept if $HOME is unknown.
func expand(path string) string {
	p, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return p
}
