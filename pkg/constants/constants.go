// Package constants provides shared constants for the flexo-savings application.
package constants

// Unit conversion constants
const (
	// MinutesPerHour converts press minutes into billable hours
	MinutesPerHour = 60.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPercentage is the upper bound for reduction percentages
	MaxPercentage = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded best-effort before any configuration
	DefaultEnvFile = ".env"

	// EnvPrefix is the prefix for environment overrides (FLEXO_LOGGING_LEVEL, ...)
	EnvPrefix = "FLEXO"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown
	DefaultShutdownTimeoutSeconds = 10
)

// Storage constants
const (
	// StorageDriverMemory keeps sessions in process memory
	StorageDriverMemory = "memory"

	// StorageDriverSQLite persists sessions in a SQLite database
	StorageDriverSQLite = "sqlite"

	// DefaultSQLitePath is the default SQLite database file
	DefaultSQLitePath = "./data/flexo-savings.db"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
