package clifdict

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Document built and written successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Precondition violation or invalid configuration
	ExitInputError   = 11 // Input path missing or unreadable
)

// MaxExampleValues caps the representative raw-source values carried per
// categorical variable. Vocabulary files may list more; only the first
// MaxExampleValues survive into the Dictionary.
const MaxExampleValues = 3

// DictionaryConfigFile is the optional per-project configuration file name.
const DictionaryConfigFile = "clifdict.yaml"
