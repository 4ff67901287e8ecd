package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskman/taskman.toml or OS-specific config dir)
// 3. Project config file (taskman.toml or .taskman.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file and records the
// source of every key the file defines.
func loadConfigFile(cfg *Config, path string, source Source) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	for _, key := range configKeys() {
		if md.IsDefined(key) {
			cfg.Sources[key] = source
		}
	}
	return nil
}

// parseFlags registers taskman's global flags on fs and applies any the
// caller set. Flags take precedence over every other source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	file := fs.String("file", cfg.TaskFile, "Task file path")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error|fatal)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	logCaller := fs.Bool("log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.TaskFile = *file
			cfg.Sources["task_file"] = SourceFlag
		case "log-level":
			cfg.LogLevel = *logLevel
			cfg.Sources["log_level"] = SourceFlag
		case "log-format":
			cfg.LogFormat = *logFormat
			cfg.Sources["log_format"] = SourceFlag
		case "log-timestamps":
			cfg.LogTimestamps = *logTimestamps
			cfg.Sources["log_timestamps"] = SourceFlag
		case "log-caller":
			cfg.LogCaller = *logCaller
			cfg.Sources["log_caller"] = SourceFlag
		}
	})

	return nil
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.TaskFile = expandPath(cfg.TaskFile)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.ProjectRoot, cfg.TaskFile)
	}

	return nil
}
