package btouch

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Toucher creates a file if it is absent and updates its timestamps otherwise.
type Toucher interface {
	Touch(path string) error
}

// FileToucher touches files on the local filesystem.
type FileToucher struct {
	// Now returns the timestamp applied to touched files. Defaults to time.Now.
	Now func() time.Time
}

// Touch sets the access and modification times of path, creating it first
// if it does not exist. Existing files are never opened, so read-only files
// and FIFOs are touched like any other. Errors are returned as *TouchFailure.
func (t FileToucher) Touch(path string) error {
	if path == "" {
		return &TouchFailure{Target: path, Reason: ReasonInvalidPath}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &TouchFailure{Target: path, Reason: ReasonInvalidPath, Err: errors.New("is a directory")}
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	ts := now()

	err := os.Chtimes(path, ts, ts)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &TouchFailure{Target: path, Reason: classify(err), Err: err}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return &TouchFailure{Target: path, Reason: classify(err), Err: err}
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return &TouchFailure{Target: path, Reason: ReasonInvalidPath, Err: err}
		}
	}

	// Created just now, or by someone else between the two calls.
	if err := os.Chtimes(path, ts, ts); err != nil {
		return &TouchFailure{Target: path, Reason: classify(err), Err: err}
	}
	return nil
}

func classify(err error) FailureReason {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, fs.ErrNotExist):
		return ReasonParentMissing
	default:
		return ReasonInvalidPath
	}
}

// TargetName returns the file name touched for base.
func TargetName(base, suffix string) string {
	return base + suffix
}
