package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for isolde
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitValidation         = 2
	ExitUnsupportedVersion = 3
	ExitTemplateRender     = 4
	ExitFeatureMissing     = 5
	ExitSettingsParse      = 6
	ExitRepository         = 7
	ExitNotFound           = 8
)

// IsoldeError is the base error type for isolde
type IsoldeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *IsoldeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *IsoldeError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *IsoldeError) ExitCode() int {
	return e.Code
}

// New creates a new IsoldeError
func New(code int, message string) *IsoldeError {
	return &IsoldeError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an IsoldeError
func Wrap(code int, message string, cause error) *IsoldeError {
	return &IsoldeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// FieldViolation describes a single invalid configuration field.
type FieldViolation struct {
	Field   string
	Message string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError aggregates every field violation found during config
// resolution. Violations are collected rather than returned one at a time
// so the user sees the full list in a single pass.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid configuration (%d errors): %s", len(e.Violations), strings.Join(parts, "; "))
}

// ExitCode returns the exit code for validation failures
func (e *ValidationError) ExitCode() int {
	return ExitValidation
}

// Common error constructors

// UnsupportedSchemaVersion returns an error for an unrecognized schema version
func UnsupportedSchemaVersion(version string, supported []string) *IsoldeError {
	return New(ExitUnsupportedVersion, fmt.Sprintf("unsupported schema version %q (supported: %s)", version, strings.Join(supported, ", ")))
}

// UnsupportedLangVersion returns an error for a language version outside a
// template's supported set
func UnsupportedLangVersion(template, version string, supported []string) *IsoldeError {
	return New(ExitUnsupportedVersion, fmt.Sprintf("template %s does not support language version %q (supported: %s)", template, version, strings.Join(supported, ", ")))
}

// RenderFailed returns an error for an unresolved template token
func RenderFailed(template, token string) *IsoldeError {
	return New(ExitTemplateRender, fmt.Sprintf("template %s: no value for token {{%s}}", template, token))
}

// FeatureBundleMissing returns an error for a missing feature bundle
func FeatureBundleMissing(bundle string) *IsoldeError {
	return New(ExitFeatureMissing, fmt.Sprintf("feature bundle not found: %s", bundle))
}

// SettingsParse returns an error for an unreadable settings document
func SettingsParse(path string, cause error) *IsoldeError {
	return Wrap(ExitSettingsParse, fmt.Sprintf("existing settings file %s is not valid JSON", path), cause)
}

// RepositoryFailed returns an error for git operations
func RepositoryFailed(op string, cause error) *IsoldeError {
	return Wrap(ExitRepository, fmt.Sprintf("git %s failed", op), cause)
}

// TemplateNotFound returns an error for a missing template
func TemplateNotFound(name string) *IsoldeError {
	return New(ExitNotFound, fmt.Sprintf("template not found: %s", name))
}

// PresetNotFound returns an error for a missing preset
func PresetNotFound(name string) *IsoldeError {
	return New(ExitNotFound, fmt.Sprintf("preset not found: %s", name))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *IsoldeError {
	return Wrap(ExitGeneralError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var isoldeErr *IsoldeError
	if errors.As(err, &isoldeErr) {
		return isoldeErr.ExitCode()
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
