package btouch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempCWD(t *testing.T) string {
	t.Helper()

	cwd, err := os.Getwd()
	require.NoError(t, err, "getwd")

	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp), "chdir temp dir")
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
	return tmp
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

func TestTargetName(t *testing.T) {
	tests := []struct {
		base, suffix, want string
	}{
		{base: "report", suffix: ".txt", want: "report.txt"},
		{base: "alpha", suffix: "", want: "alpha"},
		{base: "notes", suffix: "_draft.md", want: "notes_draft.md"},
		{base: "", suffix: ".txt", want: ".txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetName(tt.base, tt.suffix))
	}
}

func TestFileToucherCreatesMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	require.NoError(t, FileToucher{}.Touch(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Zero(t, info.Size())
}

func TestFileToucherKeepsContentAndUpdatesTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o644))

	old := time.Unix(1_000_000_000, 0)
	require.NoError(t, os.Chtimes(path, old, old))

	stamp := time.Unix(1_700_000_000, 0)
	toucher := FileToucher{Now: func() time.Time { return stamp }}
	require.NoError(t, toucher.Touch(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mtime: got %s want %s", info.ModTime(), stamp)
}

func TestFileToucherUpdatesReadOnlyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro.txt")
	require.NoError(t, os.WriteFile(path, []byte("locked"), 0o444))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	stamp := time.Unix(1_700_000_000, 0)
	toucher := FileToucher{Now: func() time.Time { return stamp }}
	require.NoError(t, toucher.Touch(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mtime: got %s want %s", info.ModTime(), stamp)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "locked", string(data))
}

func TestFileToucherFailureReasons(t *testing.T) {
	dir := t.TempDir()
	subdir := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	tests := []struct {
		name   string
		path   string
		reason FailureReason
	}{
		{name: "empty", path: "", reason: ReasonInvalidPath},
		{name: "parent missing", path: filepath.Join(dir, "nope", "file.txt"), reason: ReasonParentMissing},
		{name: "directory", path: subdir, reason: ReasonInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileToucher{}.Touch(tt.path)
			require.Error(t, err)

			var failure *TouchFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.path, failure.Target)
			assert.Equal(t, tt.reason, failure.Reason)
		})
	}
}

func TestFileToucherPermissionDenied(t *testing.T) {
	skipIfRoot(t)

	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := FileToucher{}.Touch(filepath.Join(dir, "file.txt"))

	var failure *TouchFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, ReasonPermission, failure.Reason)
	assert.ErrorIs(t, err, os.ErrPermission)
}
