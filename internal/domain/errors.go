package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed lint run.
type ErrorKind int

const (
	FileError ErrorKind = iota + 1
	ParseError
	NetworkError
	DecodeError
	NoResultError
)

func (k ErrorKind) String() string {
	switch k {
	case FileError:
		return "file"
	case ParseError:
		return "parse"
	case NetworkError:
		return "network"
	case DecodeError:
		return "decode"
	case NoResultError:
		return "no_result"
	default:
		return "unknown"
	}
}

// ExitCode is the process exit status reported for this kind.
func (k ErrorKind) ExitCode() int {
	switch k {
	case FileError:
		return 2
	case ParseError:
		return 3
	case NetworkError:
		return 4
	case DecodeError:
		return 5
	case NoResultError:
		return 6
	default:
		return 1
	}
}

// NoResultMessage is printed when the response carries no lint payload.
const NoResultMessage = "No lint result returned"

// ErrNoResult is the cause carried by NoResultError.
var ErrNoResult = errors.New("no lint result returned")

// LintError is a classified failure of the lint pipeline.
type LintError struct {
	Kind ErrorKind
	// Path is the document source, set for FileError and ParseError.
	Path string
	Err  error
}

func (e *LintError) Error() string {
	switch e.Kind {
	case FileError:
		return fmt.Sprintf("Error opening file: %s: %v", e.Path, e.Err)
	case ParseError:
		return fmt.Sprintf("Generic YAML parse failed: %v", e.Err)
	case NetworkError:
		return fmt.Sprintf("Lint request failed: %v", e.Err)
	case DecodeError:
		return fmt.Sprintf("Could not decode lint response: %v", e.Err)
	case NoResultError:
		return NoResultMessage
	default:
		return fmt.Sprintf("lint failed: %v", e.Err)
	}
}

func (e *LintError) Unwrap() error { return e.Err }

// NewFileError wraps a read failure for path.
func NewFileError(path string, err error) *LintError {
	return &LintError{Kind: FileError, Path: path, Err: err}
}

// NewParseError wraps a parser diagnostic for path.
func NewParseError(path string, err error) *LintError {
	return &LintError{Kind: ParseError, Path: path, Err: err}
}

// NewNetworkError wraps a transport or HTTP status failure.
func NewNetworkError(err error) *LintError {
	return &LintError{Kind: NetworkError, Err: err}
}

// NewDecodeError wraps a malformed response body.
func NewDecodeError(err error) *LintError {
	return &LintError{Kind: DecodeError, Err: err}
}

// NewNoResultError reports a response without a lint payload.
func NewNoResultError() *LintError {
	return &LintError{Kind: NoResultError, Err: ErrNoResult}
}

// KindOf returns the kind of the first LintError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var le *LintError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}
