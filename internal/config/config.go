package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Region       string   `toml:"region,omitempty"`
	Profile      string   `toml:"profile,omitempty"`
	AWSCLI       string   `toml:"aws_cli"`
	FetchTimeout Duration `toml:"fetch_timeout"`
	RetryDelay   Duration `toml:"retry_delay"`
	TickInterval Duration `toml:"tick_interval"`
	ECSCommand   string   `toml:"ecs_command"`
	DefaultHost  string   `toml:"default_host"`
	LogFile      string   `toml:"log_file"`
	LogLevel     string   `toml:"log_level"`
}

const (
	defaultConfigPath   = "~/.config/cloudhop/config.toml"
	defaultLogFile      = "~/.local/state/cloudhop/cloudhop.log"
	defaultAWSCLI       = "aws"
	defaultFetchTimeout = 15 * time.Second
	defaultRetryDelay   = 2 * time.Second
	defaultTickInterval = 100 * time.Millisecond
	defaultECSCommand   = "/bin/sh"
	defaultHost         = "localhost"
	defaultLogLevel     = "info"
)

// Duration is a time.Duration written as a Go duration string ("15s")
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	*d = Duration(parsed)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for path, or the default
// location when path is empty
func NewConfigService(path string) (ConfigService, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return &configService{filePath: resolved}, nil
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AWSCLI:       defaultAWSCLI,
		FetchTimeout: Duration(defaultFetchTimeout),
		RetryDelay:   Duration(defaultRetryDelay),
		TickInterval: Duration(defaultTickInterval),
		ECSCommand:   defaultECSCommand,
		DefaultHost:  defaultHost,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
	}
}

// normalize trims values and puts defaults back where the file left blanks
func (c *Config) normalize() {
	c.Region = strings.TrimSpace(c.Region)
	c.Profile = strings.TrimSpace(c.Profile)

	def := DefaultConfig()
	if c.AWSCLI = strings.TrimSpace(c.AWSCLI); c.AWSCLI == "" {
		c.AWSCLI = def.AWSCLI
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.ECSCommand = strings.TrimSpace(c.ECSCommand); c.ECSCommand == "" {
		c.ECSCommand = def.ECSCommand
	}
	if c.DefaultHost = strings.TrimSpace(c.DefaultHost); c.DefaultHost == "" {
		c.DefaultHost = def.DefaultHost
	}
	if c.LogFile = strings.TrimSpace(c.LogFile); c.LogFile == "" {
		c.LogFile = def.LogFile
	} else {
		c.LogFile = mustExpand(c.LogFile)
	}
	if c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel)); c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Override applies command line values on top of the file
func (c *Config) Override(region, profile string) {
	if r := strings.TrimSpace(region); r != "" {
		c.Region = r
	}
	if p := strings.TrimSpace(profile); p != "" {
		c.Profile = p
	}
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
