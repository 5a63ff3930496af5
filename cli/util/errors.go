package util

import "errors"

var (
	// ErrCmdAbort is reported when user aborts the program.
	ErrCmdAbort = errors.New("aborted by user")
	// ErrNotFound is reported when a required file, directory or executable is missing.
	ErrNotFound = errors.New("not found")
	// ErrTemplate is reported when a template or a file name cannot be rendered.
	ErrTemplate = errors.New("template error")
	// ErrInvalidState is reported when an operation is called out of order.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument is reported for malformed input values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEnvironment is reported when a virtual environment is not usable.
	ErrEnvironment = errors.New("environment error")
)
