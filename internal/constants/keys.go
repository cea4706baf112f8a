package constants

const (
	// TraceHeader is the default HTTP header for trace identifiers.
	TraceHeader = "X-Trace-ID"
	// RequestHeader is the default HTTP header for request identifiers.
	RequestHeader = "X-Request-ID"
	// TraceMetadataKey is the gRPC metadata key for trace identifiers.
	TraceMetadataKey = "x-trace-id"
	// RequestMetadataKey is the gRPC metadata key for request identifiers.
	RequestMetadataKey = "x-request-id"
)

// Environment variables honored by the configuration loader.
const (
	// EnvStore enables the daily log file when set to exactly "true".
	EnvStore = "LOG_STORE"
	// EnvDir is the directory of the daily log files.
	EnvDir = "LOG_DIR"
	// EnvLevelSuffix selects the minimum level.
	EnvLevelSuffix = "LEVEL"
	// EnvColorEnableSuffix toggles ANSI colors.
	EnvColorEnableSuffix = "COLOR_ENABLE"
	// EnvColorForceSuffix forces ANSI colors on non-terminal outputs.
	EnvColorForceSuffix = "COLOR_FORCE_TTY"
	// EnvMaxDepthSuffix bounds the pretty-printer recursion.
	EnvMaxDepthSuffix = "MAX_DEPTH"
	// EnvTimezoneSuffix selects the zone used to render payload dates.
	EnvTimezoneSuffix = "TIMEZONE"
)

// Configuration keys shared by the environment and YAML loaders.
const (
	KeyStore         = "store"
	KeyDir           = "dir"
	KeyLevel         = "level"
	KeyColorEnable   = "color.enable"
	KeyColorForceTTY = "color.force_tty"
	KeyMaxDepth      = "max_depth"
	KeyTimezone      = "timezone"
)
