//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
)

// Default target when running `stave` with no arguments.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"w": Windows,
	"i": Install,
	"c": Clean,
}

const (
	binaryName = "fileowners"
	mainPkg    = "./cmd/fileowners"
	binDir     = "bin"
)

// All runs lint and tests, then builds for the host and for Windows.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build, Windows)
	return nil
}

// Build compiles fileowners for the host platform.
func Build() error {
	return build(runtime.GOOS, runtime.GOARCH)
}

// Windows cross-compiles fileowners for windows/amd64, the platform whose
// owner lookup reads security descriptors.
func Windows() error {
	return build("windows", "amd64")
}

func build(goos, goarch string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating bin directory: %w", err)
	}

	output := filepath.Join(binDir, exeName(binaryName, goos))
	if goos != runtime.GOOS || goarch != runtime.GOARCH {
		output = filepath.Join(binDir, goos+"-"+goarch, exeName(binaryName, goos))
	}

	env := map[string]string{"GOOS": goos, "GOARCH": goarch}
	return sh.RunWithV(env, "go", "build", "-ldflags", buildLdflags(), "-o", output, mainPkg)
}

// Install builds and installs fileowners to GOBIN.
func Install() error {
	st.Deps(Build)

	bin, err := goBin()
	if err != nil {
		return err
	}

	src := filepath.Join(binDir, exeName(binaryName, runtime.GOOS))
	dst := filepath.Join(bin, exeName(binaryName, runtime.GOOS))

	if st.Verbose() {
		fmt.Printf("Installing %s to %s\n", src, dst)
	}
	return sh.Copy(dst, src)
}

// Uninstall removes the installed fileowners binary.
func Uninstall() error {
	bin, err := goBin()
	if err != nil {
		return err
	}

	target := filepath.Join(bin, exeName(binaryName, runtime.GOOS))
	if _, err := os.Stat(target); os.IsNotExist(err) {
		if st.Verbose() {
			fmt.Printf("Binary not found at %s, nothing to uninstall\n", target)
		}
		return nil
	}

	if st.Verbose() {
		fmt.Printf("Removing %s\n", target)
	}
	return os.Remove(target)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// VetWindows type-checks the windows build of every package.
func VetWindows() error {
	return sh.RunWithV(map[string]string{"GOOS": "windows"}, "go", "vet", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if st.Verbose() {
		fmt.Printf("Removing %s/\n", binDir)
	}
	return sh.Rm(binDir + "/")
}

// Fmt formats all Go code.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("running gofmt: %w", err)
	}
	return sh.Run("goimports", "-w", ".")
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// goBin returns GOBIN, falling back to GOPATH/bin and then /usr/local/bin.
func goBin() (string, error) {
	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return "", fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin != "" {
		return bin, nil
	}

	gopath, err := sh.Output(gocmd, "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("determining GOPATH: %w", err)
	}
	if gopath != "" {
		return filepath.Join(gopath, "bin"), nil
	}
	return "/usr/local/bin", nil
}

func exeName(name, goos string) string {
	if goos == "windows" {
		return name + ".exe"
	}
	return name
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version := "dev"
	commit := "unknown"
	date := time.Now().UTC().Format(time.RFC3339)

	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		version = strings.TrimSpace(v)
	}
	if c, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && c != "" {
		commit = strings.TrimSpace(c)
	}

	// Variables in package main are addressed as main.<name>.
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
