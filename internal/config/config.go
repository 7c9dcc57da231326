package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/danke/internal/client"
	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/logging"
	"github.com/yourusername/danke/internal/state"
)

const (
	DefaultConfigDir  = ".config/danke"
	DefaultConfigFile = "config.yaml"
)

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/danke/config.yaml (or config.json) and a
// missing file yields the zero Config. An explicit path must exist.
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		yamlPath := GetConfigPath()
		if yamlPath == "" {
			return &Config{}, nil
		}
		jsonPath := filepath.Join(filepath.Dir(yamlPath), "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	format := strings.TrimPrefix(ext, ".")
	if format == "" {
		format = "yaml"
	}

	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errs.Configf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errs.Configf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, errs.Configf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errs.Configf("%w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default config file path, or "" when the home
// directory is unknown
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// CurrentEnvironment reads the environment variables danke uses
func CurrentEnvironment() Environment {
	return Environment{
		User: os.Getenv("USER"),
		Home: os.Getenv("HOME"),
	}
}

// Settings is the effective configuration of one invocation
type Settings struct {
	StatePath string
	Timeout   time.Duration
	LogLevel  zerolog.Level
	LogFile   string

	socket string
	user   string
}

// Resolve merges command line overrides, the config file and the
// environment, in that order of precedence.
func Resolve(cfg *Config, o Overrides, env Environment) (*Settings, error) {
	s := &Settings{
		socket: firstNonEmpty(o.Socket, cfg.Socket),
		user:   env.User,
	}

	s.StatePath = firstNonEmpty(o.State, cfg.State)
	if s.StatePath == "" {
		s.StatePath = state.PathForHome(env.Home)
	}

	timeout, err := parseTimeout(firstNonEmpty(o.Timeout, cfg.Timeout))
	if err != nil {
		return nil, errs.Usagef("invalid timeout: %v", err)
	}
	s.Timeout = timeout

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errs.Configf("invalid log level %q", cfg.Log.Level)
	}
	if o.Debug {
		level = zerolog.DebugLevel
	}
	s.LogLevel = level
	s.LogFile = cfg.Log.File

	return s, nil
}

// SocketPath returns the yabai socket to talk to. Without an explicit path
// it is derived from $USER, which must then be set.
func (s *Settings) SocketPath() (string, error) {
	if s.socket != "" {
		return s.socket, nil
	}
	return client.SocketPathForUser(s.user)
}

func parseTimeout(v string) (time.Duration, error) {
	if v == "" {
		return client.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", v)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
