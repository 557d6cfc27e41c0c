package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/treeconf/internal/canon"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Trial failures or regressions
	ExitCommandError = 2 // Command error (missing corpus, bad config, database errors)
)

// Error codes reported in JSON error responses.
const (
	ErrCodeGeneric     = "E001"
	ErrCodeCorpus      = "E002" // corpus missing or malformed
	ErrCodeConfig      = "E003" // config unreadable or invalid
	ErrCodeDatabase    = "E004" // run history unavailable
	ErrCodeFilter      = "E005" // bad --filter pattern
	ErrCodeInput       = "E006" // tree input unreadable
	ErrCodeTestFailed  = "E_TEST_FAILED"
	ErrCodeRegressions = "E_REGRESSED"
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
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// textRenderer is implemented by payloads with their own text form.
type textRenderer interface {
	renderText(w io.Writer)
}

// OutputFormatter handles JSON vs text output for CLI commands.
// JSON responses are written as RFC 8785 canonical JSON, one per line.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == "json"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.isJSON() {
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}
	f.writeText(data)
	return nil
}

// Failure outputs a result that fails the command: the payload plus an
// error naming why. Text mode prints only the payload.
func (f *OutputFormatter) Failure(data any, code, message string) error {
	if f.isJSON() {
		return f.writeJSON(CLIResponse{
			Status: "error",
			Data:   data,
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	f.writeText(data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.isJSON() {
		return f.writeJSON(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// CommandError reports err as a JSON error response when JSON output is
// selected and returns it as an ExitCommandError. Text mode leaves printing
// to the caller of Execute.
func (f *OutputFormatter) CommandError(code, message string, err error) error {
	if f.isJSON() {
		msg := message
		if err != nil {
			msg = fmt.Sprintf("%s: %v", message, err)
		}
		if werr := f.Error(code, msg, nil); werr != nil {
			return werr
		}
	}
	return WrapExitError(ExitCommandError, message, err)
}

func (f *OutputFormatter) writeText(data any) {
	if r, ok := data.(textRenderer); ok {
		r.renderText(f.Writer)
		return
	}
	fmt.Fprintln(f.Writer, data)
}

func (f *OutputFormatter) writeJSON(resp CLIResponse) error {
	b, err := canon.MarshalReport(resp)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = f.Writer.Write(b)
	return err
}
