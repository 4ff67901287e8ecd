package config

// ExampleConfig returns a commented example taskman.toml, written by the
// init command.
func ExampleConfig() string {
	return `# taskman configuration
# Values here are overridden by environment variables (TASKMAN_*) and flags.

# Task file path. Relative paths resolve against the working directory.
task_file = "tasks.json"

# Logging: level is one of debug|info|warn|error|fatal,
# format is one of text|json|logfmt.
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
