package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	State     StateConfig
	Database  DatabaseConfig
	Workbook  WorkbookConfig
	Admin     AdminConfig
	Lockout   LockoutConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port   string
	Mode   string
	LogDir string `mapstructure:"log_dir"`
}

// StateConfig selects the progress store backend. "file" is the default;
// "mysql" switches to the gorm store, "memory" keeps nothing on disk.
type StateConfig struct {
	Store string
	Path  string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

// WorkbookConfig points at an optional local workbook picked up at boot.
// Uploads replace it at runtime either way.
type WorkbookConfig struct {
	Path string
}

// AdminConfig carries the shared secret gating the reset and upload
// endpoints. Empty secret disables the whole admin surface.
type AdminConfig struct {
	Secret string
}

type LockoutConfig struct {
	DefaultSeconds int `mapstructure:"default_seconds"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ESCAPE_ROOM")
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	viper.BindEnv("state.store", "STATE_STORE")
	viper.BindEnv("state.path", "STATE_PATH")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	viper.BindEnv("workbook.path", "WORKBOOK_PATH")
	viper.BindEnv("admin.secret", "ADMIN_SECRET")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("state.store", "file")
	viper.SetDefault("state.path", "escape_state.json")
	viper.SetDefault("workbook.path", "escape_rooms_template.xlsx")
	viper.SetDefault("lockout.default_seconds", 180)
	viper.SetDefault("rate_limit.max_requests", 600)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		// The defaults plus env vars are a complete configuration; only a
		// broken config file is fatal, a missing one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch cfg.State.Store {
	case "file", "mysql", "memory":
	default:
		return nil, fmt.Errorf("unknown state store %q (want file, mysql or memory)", cfg.State.Store)
	}

	if cfg.Lockout.DefaultSeconds <= 0 {
		cfg.Lockout.DefaultSeconds = 180
	}

	// An explicit zero in the config would make the limiter divide by
	// zero; treat any non-positive value as "use the default".
	if cfg.RateLimit.MaxRequests <= 0 {
		cfg.RateLimit.MaxRequests = 600
	}
	if cfg.RateLimit.WindowMinutes <= 0 {
		cfg.RateLimit.WindowMinutes = 1
	}

	return &cfg, nil
}
