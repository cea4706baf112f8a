// Package constants provides application-wide constant values
// used throughout the logger system. These constants define
// environment names, configuration keys, and other fixed values
// to ensure consistency across the codebase.
package constants

const (
	// AppName is the name of the command line tool.
	AppName = "cornlog"
	// Version is the command line tool version.
	Version = "1.0.2"
	// WarningPrefix marks the lines the logger writes about its own failures.
	WarningPrefix = "[cornlog]"
	// DefaultEnvPrefix is the prefix of the logger's own environment variables.
	DefaultEnvPrefix = "CORNLOG"
	// LogFileExtension is appended to the daily file name.
	LogFileExtension = ".log"
	// ProductionEnvironment selects the production defaults of log.NewWithDefaults.
	ProductionEnvironment = "production"
)
