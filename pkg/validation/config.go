package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/flexo-savings/pkg/constants"
	"go.uber.org/zap/zapcore"
)

// ValidateLogLevel checks that level is empty or a level zap understands.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// ValidateLogFormat accepts "", "json" and "console".
func ValidateLogFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("invalid log format %q: expected json or console", format)
}

// ValidateStorage checks the session storage driver and its path.
func ValidateStorage(driver, path string) error {
	switch driver {
	case "", constants.StorageDriverMemory:
		return nil
	case constants.StorageDriverSQLite:
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("storage driver %s requires a path", driver)
		}
		return nil
	}
	return fmt.Errorf("unsupported storage driver %q: expected %s or %s",
		driver, constants.StorageDriverMemory, constants.StorageDriverSQLite)
}
