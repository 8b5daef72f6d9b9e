package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported log format")
	ErrNoPluginFields    = errors.New("no plugin fields requested")
	ErrNoLogFiles        = errors.New("no log files found")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrToolNotConfigured = errors.New("scan tool not configured")
)

// InputError reports a problem with the aggregator's inputs: the log folder
// is missing or unreadable, or the requested field list is unusable.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return fmt.Sprintf("invalid input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func NewInputError(path string, err error) *InputError {
	return &InputError{Path: path, Err: err}
}

// ParseError identifies a scan record file that could not be parsed as the
// declared log format. The whole aggregation run aborts on the first one.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse log file %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(file string, err error) *ParseError {
	return &ParseError{File: file, Err: err}
}

// OutputError reports that the report destination could not be created or
// written. No partial report file is left behind on this path.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

func NewOutputError(path string, err error) *OutputError {
	return &OutputError{Path: path, Err: err}
}

// ToolError wraps a failure from the external fingerprinting command for a
// single target.
type ToolError struct {
	Target string
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("scan of target %s failed: %v", e.Target, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func NewToolError(target string, err error) *ToolError {
	return &ToolError{Target: target, Err: err}
}
