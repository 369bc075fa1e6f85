package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for toadbox-ctl
const (
	ExitSuccess                 = 0
	ExitGeneralError            = 1
	ExitInstanceNotFound        = 2
	ExitValidation              = 3
	ExitPortConflict            = 4
	ExitComposeFailed           = 5
	ExitConfigError             = 6
	ExitControlPlaneUnavailable = 7
	ExitSSHError                = 8
	ExitRDPError                = 9
)

// ToadboxError is the base error type for toadbox-ctl
type ToadboxError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ToadboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ToadboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ToadboxError) ExitCode() int {
	return e.Code
}

// New creates a new ToadboxError
func New(code int, message string) *ToadboxError {
	return &ToadboxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ToadboxError
func Wrap(code int, message string, cause error) *ToadboxError {
	return &ToadboxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// InstanceNotFound returns an error for a missing instance
func InstanceNotFound(name string) *ToadboxError {
	return New(ExitInstanceNotFound, fmt.Sprintf("instance not found: %s", name))
}

// InstanceNotRunning returns an error when an instance exists but is not running
func InstanceNotRunning(name string) *ToadboxError {
	return New(ExitGeneralError, fmt.Sprintf("instance %s is not running", name))
}

// DuplicateName returns a validation error for an already-registered name
func DuplicateName(name string) *ToadboxError {
	return New(ExitValidation, fmt.Sprintf("instance '%s' already exists", name))
}

// PortConflict returns a validation error naming the instance that already
// claims one or both ports, and which role(s) collided.
func PortConflict(existing string, roles []string) *ToadboxError {
	return New(ExitPortConflict,
		fmt.Sprintf("ports already in use by '%s' (%s)", existing, strings.Join(roles, ", ")))
}

// ControlPlaneUnavailable returns an error when neither compose binding resolves
func ControlPlaneUnavailable() *ToadboxError {
	return New(ExitControlPlaneUnavailable, "docker compose not found")
}

// ComposeFailed returns an error for a failed compose invocation
func ComposeFailed(op, diagnostic string) *ToadboxError {
	if diagnostic == "" {
		diagnostic = "no output"
	}
	return New(ExitComposeFailed, fmt.Sprintf("failed to %s: %s", op, diagnostic))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ToadboxError {
	return Wrap(ExitConfigError, message, cause)
}

// SSHError returns an error for SSH operations
func SSHError(message string, cause error) *ToadboxError {
	return Wrap(ExitSSHError, message, cause)
}

// RDPError returns an error for RDP operations
func RDPError(message string, cause error) *ToadboxError {
	return Wrap(ExitRDPError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ToadboxError {
	return New(ExitValidation, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var tbErr *ToadboxError
	if errors.As(err, &tbErr) {
		return tbErr.ExitCode()
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
