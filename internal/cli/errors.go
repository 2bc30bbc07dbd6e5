package cli

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks bad invocations: wrong arguments, unknown flags,
// invalid values. Nothing was sent to the server.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func errUsage(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

type notFoundError struct {
	id string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("todo not found: %s", e.id)
}

// opError reports a failed operation by its category message. The cause is
// kept for logs and errors.Is.
type opError struct {
	msg string
	err error
}

func (e opError) Error() string { return e.msg }
func (e opError) Unwrap() error { return e.err }

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}
