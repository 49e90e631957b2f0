package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mosegui/lookout/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultExtension   = ".py"
	DefaultRadonBin    = "radon"
	DefaultPlotFile    = "lookout.png"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	TargetDir   string // Absolute path of the directory under analysis
	Extension   string // Source file extension of interest, e.g. ".py"
	Excludes    []string
	ResultLimit int
	Workers     int
	Precision   int // Decimal precision for displayed numbers
	Output      schema.OutputMode
	OutputFile  string
	Plot        bool
	PlotFile    string
	Width       int    // Terminal width override (0 = auto-detect)
	RadonBin    string // Complexity analyzer executable
	UseColors   bool   // Enable colored labels in table output

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TargetDirStr string

	Ext               string `mapstructure:"ext"`
	Exclude           string `mapstructure:"exclude"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Plot              bool   `mapstructure:"plot"`
	PlotFile          string `mapstructure:"plot-file"`
	Width             int    `mapstructure:"width"`
	RadonBin          string `mapstructure:"radon-bin"`
	Color             string `mapstructure:"color"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveTargetDir(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// The two stores must not share a SQLite file.
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			analysisDBPath := cfg.AnalysisDBConnect
			if analysisDBPath == "" {
				analysisDBPath = GetAnalysisDBFilePath()
			}
			if cacheDBPath == analysisDBPath {
				return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Plot = input.Plot
	cfg.Width = input.Width

	// --- Extension Validation ---
	ext := strings.TrimSpace(input.Ext)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("extension must start with '.' (received %q)", input.Ext)
	}
	cfg.Extension = ext

	// --- ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- Plot File ---
	cfg.PlotFile = strings.TrimSpace(input.PlotFile)
	if cfg.PlotFile == "" {
		cfg.PlotFile = DefaultPlotFile
	}

	// --- Analyzer Binary ---
	cfg.RadonBin = strings.TrimSpace(input.RadonBin)
	if cfg.RadonBin == "" {
		cfg.RadonBin = DefaultRadonBin
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Excludes Processing ---
	defaults := []string{
		"__pycache__/",
		".venv/", "venv/", ".tox/", ".eggs/",
		"build/", "dist/", ".egg-info",
		".git/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// resolveTargetDir resolves and checks the directory under analysis.
func resolveTargetDir(cfg *Config, input *ConfigRawInput) error {
	target := input.TargetDirStr
	if target == "" {
		target = "."
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	absTarget = filepath.Clean(absTarget)

	info, err := os.Stat(absTarget)
	if err != nil {
		return fmt.Errorf("cannot analyze %q: %w", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory", target)
	}

	cfg.TargetDir = absTarget
	return nil
}
