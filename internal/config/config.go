// Package config loads the service configuration from a YAML file via
// cleanenv. The file path comes from the CONFIG_PATH environment variable.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full service configuration.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	AssetsDir               string `yaml:"assets_dir" env-default:"./public"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	PasswordScheme          string `yaml:"password_scheme" env-default:"plain"`
	HTTPServer              `yaml:"http_server"`
	SessionToken            `yaml:"session_token"`
}

// HTTPServer configures the listener and its timeouts.
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// SessionToken configures signing of the identity cookie.
type SessionToken struct {
	SecretKey string        `yaml:"secret_key"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// MustLoad reads the config from CONFIG_PATH and exits the process when the
// file is missing or unreadable.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
