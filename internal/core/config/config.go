package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	BasePath          string
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	MaxBodyBytes      int64
	MaxInFlight       int64
	CORSOrigins       []string `mapstructure:"corsOrigins"`
}

type App struct {
	Name string
	Env  string // debug / release / test, passed to gin.SetMode
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type DB struct {
	Driver             string // postgres / mysql / memory
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Password struct {
	Cost int
}

type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Seed struct {
	Count int
}

type Config struct {
	App        App
	Log        Log
	DB         DB
	Password   Password
	Pagination Pagination
	Seed       Seed
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gin-gorm-users")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.basePath", "")
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)
	v.SetDefault("app.http.maxBodyBytes", 1<<20)
	v.SetDefault("app.http.maxInFlight", 300)
	v.SetDefault("app.http.corsOrigins", []string{"http://localhost:5173"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "host=localhost port=5432 user=postgres password=postgres dbname=users sslmode=disable")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("password.cost", 10)
	v.SetDefault("pagination.defaultPageSize", 10)
	v.SetDefault("pagination.maxPageSize", 100)
	v.SetDefault("seed.count", 100)
}

// Load reads the YAML file at path (or CONFIG_PATH, or ./configs/config.local.yaml)
// and applies APP_* environment overrides, e.g. APP_DB_DSN for db.dsn. A missing
// file is fine; defaults cover every key.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
