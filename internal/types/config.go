package types

type RunMode string

const (
	// ModeLocal is the mode for running the engine locally (preview CLI, tests)
	ModeLocal RunMode = "local"
	// ModeLibrary is the mode for the engine embedded in the booking service
	ModeLibrary RunMode = "library"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
