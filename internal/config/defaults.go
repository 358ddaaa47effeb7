package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		TargetDir:          "",
		AgeThresholdMonths: 3,
		Simulate:           false,
		Decision:           DecisionAsk,
		ExcludePatterns:    []string{},
		LogLevel:           "info",
		LogFormat:          "console",
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# Downloads Cleaner Configuration File
# Location: ~/.config/downloads-cleaner/config.yaml

# Directory to organize. Leave empty to use the platform downloads folder.
target_dir: ""

# Files last modified at least this many months ago count as stale.
# A month is 30 days. 0 marks every file stale.
age_threshold_months: 3

# Simulate mode - When true, computes and logs every action without
# moving or deleting anything
simulate: false

# What happens to stale files: ask, keep, or delete
#   ask:    prompt for each stale file
#   keep:   stale files are kept and filed like fresh ones
#   delete: stale files go to the trash without prompting
decision: ask

# Exclude patterns (glob patterns matched against entry names)
# Entries matching these patterns will be skipped
exclude_patterns: []
#  - "*.partial"
#  - "node_modules"

# Extra extensions per category, merged into the built-in rules.
# Unknown labels create new categories. Matching uses a name's final
# dot-suffix only, so "backup.tar.gz" is a ".gz" file, not a ".tar.gz".
# categories:
#   Documents:
#     - ".md"
#     - ".epub"
#   Archives:
#     - ".zip"
#     - ".gz"

# Logging
log_level: info     # debug, info, warn, error
log_format: console # console, json
`
}
