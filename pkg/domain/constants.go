package domain

// Field constants for mapstructure and JSON standardization.
const (
	KeyCommand = "command"
	KeyCwd     = "cwd"
	KeyTimeout = "timeout"
	KeySource  = "source"
	KeyTarget  = "target"
)

// DefaultTimeoutSeconds is used when no positive timeout is configured.
const DefaultTimeoutSeconds = 30

// CwdVariablePrefix marks a cwd value that names a host variable.
const CwdVariablePrefix = "$"

// CommandPromptName is the prompt name used when the command itself is asked for.
const CommandPromptName = "command"
