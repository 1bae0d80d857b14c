package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "CSR"

const (
	BackendMemory = "memory"
	BackendDuckDB = "duckdb"
)

type Settings struct {
	Server     ServerSettings     `mapstructure:"server"`
	Storage    StorageSettings    `mapstructure:"storage"`
	Simulation SimulationSettings `mapstructure:"simulation"`
	Log        LogSettings        `mapstructure:"log"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type StorageSettings struct {
	Backend string `mapstructure:"backend"`
	DbPath  string `mapstructure:"db_path"`
	Seed    bool   `mapstructure:"seed"`
}

type SimulationSettings struct {
	Latency time.Duration `mapstructure:"latency"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.db_path", "csr-atlas.db")
	v.SetDefault("storage.seed", true)
	v.SetDefault("simulation.latency", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load reads settings from defaults, the optional file at path and CSR_*
// environment variables, in increasing order of precedence.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s Settings) Validate() error {
	switch s.Storage.Backend {
	case BackendMemory:
	case BackendDuckDB:
		if s.Storage.DbPath == "" {
			return fmt.Errorf("storage.db_path is required for the %s backend", BackendDuckDB)
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", s.Storage.Backend)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", s.Server.Port)
	}
	if s.Simulation.Latency < 0 {
		return fmt.Errorf("simulation.latency must not be negative")
	}
	return nil
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
