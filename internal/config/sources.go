package config

import (
	"os"
	"path/filepath"
)

// Config file names searched for in the working directory.
const (
	projectConfigName       = "taskman.toml"
	hiddenProjectConfigName = ".taskman.toml"
)

// findUserConfigFile returns the path to the user config file, or "" if none
// exists. ~/.taskman/taskman.toml wins over the OS-specific config dir.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".taskman", projectConfigName)
		if fileExists(candidate) {
			return candidate
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(configDir, "taskman", projectConfigName)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// findProjectConfigFile returns the path to the project config file in the
// current directory, or "" if none exists.
func findProjectConfigFile() string {
	for _, name := range []string{projectConfigName, hiddenProjectConfigName} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
