// Package config loads runtime settings from, in order of precedence,
// command-line flags (bound by the caller), BARMATE_* environment
// variables, .env files, an optional .barmate.yaml, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/barmate/internal/storage"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BARMATE"

// Config holds the resolved settings.
type Config struct {
	ConfigFile string

	Namespace string
	Storage   Storage
	Locale    string
	LogLevel  string
	LogFile   string
}

// Storage mirrors the storage.* keys.
type Storage struct {
	Driver        string
	Path          string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("namespace", storage.DefaultNamespace)
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.path", ".barmate")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_endpoint", "")
	v.SetDefault("storage.s3_path_style", false)
	v.SetDefault("locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", ".barmate/barmate.log")
}

// New returns a viper instance with defaults and env binding applied. The
// caller may bind cobra flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env files and the config file into v and builds a Config.
// An explicit configFile must exist; the default search tolerates absence.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".barmate")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),
		Namespace:  v.GetString("namespace"),
		Storage: Storage{
			Driver:        v.GetString("storage.driver"),
			Path:          v.GetString("storage.path"),
			PostgresDSN:   v.GetString("storage.postgres_dsn"),
			RedisAddr:     v.GetString("storage.redis_addr"),
			RedisPassword: v.GetString("storage.redis_password"),
			RedisDB:       v.GetInt("storage.redis_db"),
			S3Bucket:      v.GetString("storage.s3_bucket"),
			S3Region:      v.GetString("storage.s3_region"),
			S3Endpoint:    v.GetString("storage.s3_endpoint"),
			S3PathStyle:   v.GetBool("storage.s3_path_style"),
		},
		Locale:   v.GetString("locale"),
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
	}, nil
}

// StorageConfig converts to the storage package's Config.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:      c.Storage.Driver,
		Namespace:   c.Namespace,
		Path:        c.Storage.Path,
		PostgresDSN: c.Storage.PostgresDSN,
		Redis: storage.RedisOptions{
			Addr:     c.Storage.RedisAddr,
			Password: c.Storage.RedisPassword,
			DB:       c.Storage.RedisDB,
		},
		S3: storage.S3Options{
			Bucket:    c.Storage.S3Bucket,
			Region:    c.Storage.S3Region,
			Endpoint:  c.Storage.S3Endpoint,
			PathStyle: c.Storage.S3PathStyle,
		},
	}
}

// LocaleTag parses Locale, falling back to English.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil || tag == language.Und {
		return language.English
	}
	return tag
}

// loadEnvFiles loads .env then .env.local. Existing variables win.
func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}
}
