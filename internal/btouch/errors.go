package btouch

import (
	"errors"
	"fmt"
)

// Exit codes returned by the btouch process.
const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitTouchFailure  = 2
	ExitInstallFailed = 3
)

// UsageError reports malformed arguments. It is always returned before any
// filesystem mutation.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	if e.Reason == "" {
		return "invalid usage"
	}
	return "invalid usage: " + e.Reason
}

// FailureReason classifies a failed touch.
type FailureReason string

const (
	ReasonInvalidPath   FailureReason = "invalid path"
	ReasonPermission    FailureReason = "permission denied"
	ReasonParentMissing FailureReason = "parent directory missing"
)

// TouchFailure is the error for a single target that could not be touched.
type TouchFailure struct {
	Target string
	Reason FailureReason
	Err    error
}

func (e *TouchFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("touch %q: %s", e.Target, e.Reason)
	}
	return fmt.Sprintf("touch %q: %s: %v", e.Target, e.Reason, e.Err)
}

func (e *TouchFailure) Unwrap() error { return e.Err }

// BatchError collects the failures of a create-mode run.
type BatchError struct {
	Failures []*TouchFailure
	Total    int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d targets failed", len(e.Failures), e.Total)
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// InstallFailure reports an install-mode error. The executable stays at
// Source unless Err wraps ErrNotExecutable, in which case it is at Dest
// without execute permission.
type InstallFailure struct {
	Source string
	Dest   string
	Err    error
}

func (e *InstallFailure) Error() string {
	return fmt.Sprintf("installing %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *InstallFailure) Unwrap() error { return e.Err }

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var batchErr *BatchError
	var installErr *InstallFailure
	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &installErr):
		return ExitInstallFailed
	case errors.As(err, &batchErr):
		return ExitTouchFailure
	default:
		return ExitUsage
	}
}
