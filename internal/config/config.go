package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"local"`
	API         API        `yaml:"api"`
	Scanner     Scanner    `yaml:"scanner"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	Database    Database   `yaml:"database"`
	SessionFile string     `yaml:"session_file" env:"MA_CENTRAL_SESSION_FILE"`
}

type API struct {
	BaseURL string        `yaml:"base_url" env:"MACSVC_URL" env-default:"https://macsvc.jayagra.com"`
	Timeout time.Duration `yaml:"timeout" env:"MACSVC_TIMEOUT" env-default:"15s"`
}

type Scanner struct {
	ResetDelay time.Duration `yaml:"reset_delay" env:"SCANNER_RESET_DELAY" env-default:"1s"`
	// StdinEventID binds a keyboard-wedge scanner on stdin to one event. Zero disables it.
	StdinEventID int64 `yaml:"stdin_event_id" env:"SCANNER_STDIN_EVENT_ID" env-default:"0"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8082"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// Enabled reports whether a journal database is configured.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// MustLoad loads the config from path, falling back to CONFIG_PATH.
// Without either, only environment variables and defaults apply.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from environment: %w", err)
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}

	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	return &cfg, nil
}

func defaultSessionFile() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "ma-central-cookies.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}

	return filepath.Join(configDirectory, "ma-central", "cookies.json")
}
