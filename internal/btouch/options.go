package btouch

import (
	"os"
	"strings"
)

// DefaultInstallDir is where install mode places the executable.
const DefaultInstallDir = "/usr/local/bin"

// InstallDirEnv overrides DefaultInstallDir.
const InstallDirEnv = "BTOUCH_INSTALL_DIR"

// Options are CLI overrides for a run.
type Options struct {
	Install    bool
	InstallDir string
	Sudo       bool
	DryRun     bool
	Quiet      bool
	NoColor    bool
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{
		InstallDir: LoadInstallDir(),
	}
}

// LoadInstallDir returns $BTOUCH_INSTALL_DIR if set, else DefaultInstallDir.
func LoadInstallDir() string {
	if dir := strings.TrimSpace(os.Getenv(InstallDirEnv)); dir != "" {
		return dir
	}
	return DefaultInstallDir
}

func (o Options) installDir() string {
	if o.InstallDir == "" {
		return LoadInstallDir()
	}
	return o.InstallDir
}
