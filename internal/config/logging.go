package config

import (
	"github.com/rshade/holocron/internal/logging"
)

// ToLoggingConfig converts the logging section to a logging.Config.
// A configured File selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:      lc.Level,
		Format:     lc.Format,
		Output:     output,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global configuration.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
