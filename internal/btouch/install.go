package btouch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// BinaryName is the file name the executable is installed under.
const BinaryName = "btouch"

// Installer relocates an executable into dir and marks it executable.
// It returns the destination path.
type Installer interface {
	Install(src, dir string) (string, error)
}

// ErrNotExecutable marks an install that moved the executable but could
// neither mark it executable nor put it back.
var ErrNotExecutable = errors.New("installed but not marked executable")

// MoveInstaller moves the executable with direct filesystem calls. It needs
// write access to the destination directory. A failed install leaves the
// executable at its source path unless the error wraps ErrNotExecutable.
type MoveInstaller struct {
	rename func(oldpath, newpath string) error
	chmod  func(name string, mode os.FileMode) error
	remove func(name string) error
}

func (m MoveInstaller) Install(src, dir string) (string, error) {
	rename, chmod, remove := m.rename, m.chmod, m.remove
	if rename == nil {
		rename = os.Rename
	}
	if chmod == nil {
		chmod = os.Chmod
	}
	if remove == nil {
		remove = os.Remove
	}

	dest := filepath.Join(dir, BinaryName)

	info, err := os.Stat(dir)
	if err != nil {
		return dest, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return dest, fmt.Errorf("%s is not a directory", dir)
	}

	err = rename(src, dest)
	if err == nil {
		if err := chmod(dest, 0755); err != nil {
			if rerr := rename(dest, src); rerr != nil {
				return dest, fmt.Errorf("%w: chmod %s: %v; restoring %s: %v", ErrNotExecutable, dest, err, src, rerr)
			}
			return dest, fmt.Errorf("chmod %s: %w", dest, err)
		}
		return dest, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return dest, err
	}

	// Across filesystems: copy, mark executable, then drop the source. Any
	// failure before the source is gone removes the copy again.
	if err := copyExecutable(src, dest); err != nil {
		return dest, err
	}
	if err := chmod(dest, 0755); err != nil {
		_ = remove(dest)
		return dest, fmt.Errorf("chmod %s: %w", dest, err)
	}
	if err := remove(src); err != nil {
		_ = remove(dest)
		return dest, fmt.Errorf("removing %s: %w", src, err)
	}
	return dest, nil
}

// copyExecutable writes dest fully before the caller removes src, so a
// failed copy leaves src untouched.
func copyExecutable(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dest, cerr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dest, err)
	}
	return nil
}

// CommandRunner runs an external program with discrete arguments.
type CommandRunner interface {
	Run(name string, args ...string) error
}

type execCommandRunner struct{}

func (execCommandRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// SudoInstaller moves the executable through sudo(8). Arguments are passed
// as argv, never through a shell.
type SudoInstaller struct {
	Runner CommandRunner
}

func (s SudoInstaller) Install(src, dir string) (string, error) {
	dest := filepath.Join(dir, BinaryName)

	runner := s.Runner
	if runner == nil {
		runner = execCommandRunner{}
	}

	if err := runner.Run("sudo", "mv", "--", src, dest); err != nil {
		return dest, fmt.Errorf("sudo mv: %w", err)
	}
	if err := runner.Run("sudo", "chmod", "0755", "--", dest); err != nil {
		return dest, fmt.Errorf("sudo chmod: %w", err)
	}
	return dest, nil
}
