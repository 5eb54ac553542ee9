package btouch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Usage is printed in help mode.
const Usage = `Usage: btouch <.extension> <file1> <file2> ...
       btouch -i [--prefix DIR] [--sudo]

Touch file1.extension, file2.extension, ... creating any that do not exist.
Pass "" as the extension to touch the names unchanged.

Options:
  -i, --install     Move this executable to the install directory and mark it executable
      --prefix DIR  Install directory (default: $BTOUCH_INSTALL_DIR or /usr/local/bin)
      --sudo        Run the install move through sudo
  -n, --dry-run     Print what would be done without touching anything
  -q, --quiet       Only report failures
      --no-color    Disable coloured output
  -h, --help        Show this help message

Examples:
  btouch .txt report summary
  btouch "" alpha beta
  sudo btouch -i
`

// Mode is the action selected for an invocation.
type Mode int

const (
	ModeHelp Mode = iota
	ModeCreate
	ModeInstall
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeInstall:
		return "install"
	default:
		return "help"
	}
}

// Classify selects the mode for the positional args. A non-nil error is
// always a *UsageError and comes with ModeHelp.
func Classify(install bool, args []string) (Mode, error) {
	if install {
		if len(args) > 0 {
			return ModeHelp, &UsageError{Reason: "-i takes no file arguments"}
		}
		return ModeInstall, nil
	}

	switch len(args) {
	case 0:
		return ModeHelp, &UsageError{Reason: "missing extension and file names"}
	case 1:
		return ModeHelp, &UsageError{Reason: "missing file names"}
	default:
		return ModeCreate, nil
	}
}

// Result summarises a dispatched invocation.
type Result struct {
	Mode      Mode
	Touched   []string
	Failures  []*TouchFailure
	Installed string
}

// Dispatcher runs one invocation. Zero-valued fields fall back to the local
// filesystem, the running executable, and the process's standard streams.
type Dispatcher struct {
	Toucher    Toucher
	Installer  Installer
	Executable func() (string, error)
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run classifies args and executes the selected mode.
func (d *Dispatcher) Run(opts Options, args []string) (Result, error) {
	mode, err := Classify(opts.Install, args)
	if err != nil {
		return Result{Mode: mode}, err
	}

	pal := newPalette(!opts.NoColor, d.stdout(), d.stderr())
	switch mode {
	case ModeInstall:
		return d.install(opts, pal)
	default:
		return d.create(opts, pal, args[0], args[1:])
	}
}

func (d *Dispatcher) create(opts Options, pal palette, suffix string, names []string) (Result, error) {
	res := Result{Mode: ModeCreate}
	stdout, stderr := d.stdout(), d.stderr()

	toucher := d.Toucher
	if toucher == nil {
		toucher = FileToucher{}
	}

	for _, name := range names {
		target := TargetName(name, suffix)

		if opts.DryRun {
			fmt.Fprintf(stdout, "%s %s\n", pal.dim.Sprint("Would touch"), target)
			res.Touched = append(res.Touched, target)
			continue
		}

		if err := toucher.Touch(target); err != nil {
			var failure *TouchFailure
			if !errors.As(err, &failure) {
				failure = &TouchFailure{Target: target, Reason: classify(err), Err: err}
			}
			res.Failures = append(res.Failures, failure)
			fmt.Fprintf(stderr, "%s %v\n", pal.fail.Sprint("Error:"), failure)
			continue
		}

		res.Touched = append(res.Touched, target)
		if !opts.Quiet {
			fmt.Fprintf(stdout, "%s %s\n", pal.ok.Sprint("Touched"), target)
		}
	}

	if len(res.Failures) > 0 {
		if !opts.Quiet {
			summary := fmt.Sprintf("%d touched, %d failed", len(res.Touched), len(res.Failures))
			fmt.Fprintln(stderr, pal.warn.Sprint(summary))
		}
		return res, &BatchError{Failures: res.Failures, Total: len(names)}
	}
	return res, nil
}

func (d *Dispatcher) install(opts Options, pal palette) (Result, error) {
	res := Result{Mode: ModeInstall}
	stdout := d.stdout()
	dir := opts.installDir()
	dest := filepath.Join(dir, BinaryName)

	executable := d.Executable
	if executable == nil {
		executable = os.Executable
	}
	src, err := executable()
	if err != nil {
		return res, &InstallFailure{Dest: dest, Err: fmt.Errorf("locating executable: %w", err)}
	}
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		src = resolved
	}

	if filepath.Clean(src) == filepath.Clean(dest) {
		res.Installed = dest
		fmt.Fprintf(stdout, "%s is already installed\n", dest)
		return res, nil
	}

	if opts.DryRun {
		fmt.Fprintf(stdout, "Would install %s to %s\n", src, dest)
		return res, nil
	}

	installer := d.Installer
	if installer == nil {
		if opts.Sudo {
			installer = SudoInstaller{}
		} else {
			installer = MoveInstaller{}
		}
	}

	installed, err := installer.Install(src, dir)
	if installed == "" {
		installed = dest
	}
	if err != nil {
		return res, &InstallFailure{Source: src, Dest: installed, Err: err}
	}

	res.Installed = installed
	fmt.Fprintf(stdout, "%s %s\n", pal.ok.Sprint("Installed"), installed)
	return res, nil
}

func (d *Dispatcher) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dispatcher) stderr() io.Writer {
	if d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}
