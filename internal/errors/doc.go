// Package errors provides typed errors with exit codes for isolde.
//
// # Error Types
//
// IsoldeError is the base error type that wraps an error with an exit code:
//
//	type IsoldeError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// ValidationError aggregates configuration field violations so that a single
// resolution pass reports every invalid field at once.
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess            = 0  // Success
//	ExitGeneralError       = 1  // General/unknown errors
//	ExitValidation         = 2  // Configuration field validation failed
//	ExitUnsupportedVersion = 3  // Unrecognized schema version
//	ExitTemplateRender     = 4  // Unresolved template token
//	ExitFeatureMissing     = 5  // Feature bundle not found
//	ExitSettingsParse      = 6  // Existing settings document unreadable
//	ExitRepository         = 7  // Git operation failed
//	ExitNotFound           = 8  // Template or preset does not exist
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.UnsupportedSchemaVersion("9.9", []string{"0.1"})
//	errors.RenderFailed("devcontainer.json", "PROJECT_NAME")
//	errors.FeatureBundleMissing("claude-code")
//	errors.RepositoryFailed("commit", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
