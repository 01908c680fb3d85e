package config

import (
	"errors"
	"fmt"
	"os"

	"roomcal/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Logging    LoggingConfig    `yaml:"logging"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
	API        APIConfig        `yaml:"api"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Exports    ExportConfig     `yaml:"exports"`

	// Static domain configuration, fixed at startup.
	Rooms []string    `yaml:"rooms"`
	Staff []string    `yaml:"staff"`
	Hours HoursConfig `yaml:"hours"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type APIConfig struct {
	Port      int                `yaml:"port"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// HoursConfig is the daily operating window [Start, End) in whole hours.
type HoursConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Valid reports whether the window is well formed: both bounds inside
// [0,24] and start strictly before end.
func (h HoursConfig) Valid() bool {
	return h.Start >= 0 && h.Start < 24 && h.End > 0 && h.End <= 24 && h.Start < h.End
}

func Load(configPath string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before parsing so secrets stay out of YAML.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if len(c.Rooms) == 0 {
		return errors.New("at least one room is required")
	}
	if len(c.Staff) == 0 {
		return errors.New("at least one staff member is required")
	}

	seen := make(map[string]bool, len(c.Rooms))
	for _, room := range c.Rooms {
		if room == "" {
			return errors.New("room name must not be empty")
		}
		if seen[room] {
			return fmt.Errorf("duplicate room name: %s", room)
		}
		seen[room] = true
	}

	if !c.Hours.Valid() {
		return fmt.Errorf("invalid operating hours %d..%d: want 0 <= start < end <= 24", c.Hours.Start, c.Hours.End)
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis.address is required when redis is enabled")
	}

	return nil
}

// HasRoom reports whether name is one of the configured rooms.
func (c *Config) HasRoom(name string) bool {
	for _, room := range c.Rooms {
		if room == name {
			return true
		}
	}
	return false
}

// HasStaff reports whether name is one of the configured staff members.
func (c *Config) HasStaff(name string) bool {
	for _, staff := range c.Staff {
		if staff == name {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "roomcal"
	}
	if c.Hours.Start == 0 && c.Hours.End == 0 {
		c.Hours.Start = models.DefaultStartHour
		c.Hours.End = models.DefaultEndHour
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = 20
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = 40
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
