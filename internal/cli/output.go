package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Run failure (framing, decode, encode, round-trip mismatch)
	ExitCommandError = 2 // Command error (bad paths, unreadable input)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope emitted with --format json.
type Response struct {
	Status string            `json:"status"`          // "ok" or "error"
	Terms  []json.RawMessage `json:"terms,omitempty"` // canonical forms, stream order
	Count  int               `json:"count"`           // decoded term count
	Error  string            `json:"error,omitempty"` // failure description
}

// Terms outputs a successful read result in JSON format.
func (f *OutputFormatter) Terms(terms []json.RawMessage) error {
	return json.NewEncoder(f.Writer).Encode(Response{
		Status: "ok",
		Terms:  terms,
		Count:  len(terms),
	})
}

// Error outputs a failure envelope. Only used with the json format;
// text-mode failures surface on stderr through the exit path instead,
// so the report stream never carries both.
func (f *OutputFormatter) Error(err error) error {
	return json.NewEncoder(f.Writer).Encode(Response{
		Status: "error",
		Error:  err.Error(),
	})
}
