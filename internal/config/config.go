// Package config handles configuration loading and defaults.
package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultTaskFile  = "tasks.json"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskman.
type Config struct {
	// Task file path, relative paths resolve against the working directory.
	TaskFile string `toml:"task_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory paths resolve against (computed)
	ProjectRoot string `toml:"-"`

	// Sources maps each key to where its value came from (computed)
	Sources map[string]Source `toml:"-"`
}

// configKeys returns the list of configurable keys for source tracking.
func configKeys() []string {
	return []string{
		"task_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false

	cfg.Sources = make(map[string]Source, len(configKeys()))
	for _, key := range configKeys() {
		cfg.Sources[key] = SourceDefault
	}
}
