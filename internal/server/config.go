package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address          string               `yaml:"address"`
	MaxRequestSize   string               `yaml:"maxRequestSize"`
	ShutdownTimeout  string               `yaml:"shutdownTimeout"`
	Logging          config.LoggingConfig `yaml:"logging"`
	Storage          StorageConfig        `yaml:"storage"`
	requestSizeBytes int64
	shutdownTimeout  time.Duration
}

// StorageConfig selects where sessions are kept.
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:          constants.DefaultServerAddress,
		MaxRequestSize:   fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes),
		Logging:          config.LoggingConfig{},
		Storage:          StorageConfig{Driver: constants.StorageDriverMemory},
		requestSizeBytes: constants.DefaultMaxRequestSizeBytes,
		shutdownTimeout:  constants.DefaultShutdownTimeoutSeconds * time.Second,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// SetRequestSizeBytes overrides the configured request body limit.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size > 0 {
		c.requestSizeBytes = size
		c.MaxRequestSize = fmt.Sprintf("%d", size)
	}
}

// ShutdownTimeoutDuration returns how long graceful shutdown may take.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	if c.shutdownTimeout <= 0 {
		return constants.DefaultShutdownTimeoutSeconds * time.Second
	}
	return c.shutdownTimeout
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = constants.StorageDriverMemory
	}
	if c.Storage.Driver == constants.StorageDriverSQLite && strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = constants.DefaultSQLitePath
	}
	if err := validation.ValidateStorage(c.Storage.Driver, c.Storage.Path); err != nil {
		return err
	}

	if timeout := strings.TrimSpace(c.ShutdownTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout %q: %w", c.ShutdownTimeout, err)
		}
		c.shutdownTimeout = d
	}

	sizeStr := strings.TrimSpace(c.MaxRequestSize)
	if sizeStr == "" {
		c.requestSizeBytes = constants.DefaultMaxRequestSizeBytes
		c.MaxRequestSize = fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
