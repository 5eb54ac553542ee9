//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

const (
	binary     = "btouch"
	releaseDir = "releases"
)

// Platform is a release build target.
type Platform struct {
	OS   string
	Arch string
}

var platforms = []Platform{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
}

// Build compiles btouch for the current platform.
func Build() error {
	fmt.Println("Building for current platform...")
	return sh.Run("go", "build", "-o", binary, ".")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Release cross-compiles btouch for every supported platform.
func Release() error {
	fmt.Println("Building release binaries for all platforms...")

	if err := os.MkdirAll(releaseDir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", releaseDir, err)
	}

	for _, p := range platforms {
		if err := buildForPlatform(p); err != nil {
			fmt.Printf("Warning: failed to build for %s-%s: %v\n", p.OS, p.Arch, err)
			continue
		}
		fmt.Printf("Built %s-%s-%s\n", binary, p.OS, p.Arch)
	}

	fmt.Printf("\nRelease binaries written to %s/\n", releaseDir)
	return nil
}

func buildForPlatform(p Platform) error {
	out := filepath.Join(releaseDir, fmt.Sprintf("%s-%s-%s", binary, p.OS, p.Arch))
	env := map[string]string{
		"GOOS":        p.OS,
		"GOARCH":      p.Arch,
		"CGO_ENABLED": "0",
	}
	return sh.RunWith(env, "go", "build", "-trimpath", "-o", out, ".")
}

// Run builds and runs btouch without arguments.
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./" + binary)
}

// Install builds btouch and installs it with `btouch -i`.
func Install() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "-i")
}

// Clean removes the local binary and release artifacts.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := sh.Rm(binary); err != nil {
		return err
	}
	return sh.Rm(releaseDir)
}

// CleanReleases removes release artifacts only.
func CleanReleases() error {
	fmt.Println("Cleaning release binaries...")
	return sh.Rm(releaseDir)
}
