//go:build mage
// +build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	tmpDir  = "tmp"
	appName = "lunor-web"
)

var Default = Dev

// Dev runs the server with hot reload when air is installed.
func Dev() error {
	mg.Deps(Tidy, Gen)

	if _, err := exec.LookPath("air"); err == nil {
		fmt.Println("Starting hot-reload with air ...")
		return sh.RunV("air")
	}

	fmt.Println("air not found. Falling back to `go run ./cmd/web`.")
	fmt.Println("Install with: mage Tools")
	return Run()
}

// Gen regenerates the *_templ.go files from templates/**/*.templ.
func Gen() error {
	if _, err := exec.LookPath("templ"); err != nil {
		return fmt.Errorf("templ not found. Install with: mage Tools")
	}
	fmt.Println("Generating templ components...")
	return sh.RunV("templ", "generate")
}

func Run() error {
	mg.Deps(Gen)
	fmt.Println("Running (go run) ...")
	return sh.RunV("go", "run", "./cmd/web")
}

// Build compiles the web server and storectl into bin/.
func Build() error {
	mg.Deps(Tidy, Gen)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	env := map[string]string{"CGO_ENABLED": cgo()}
	for name, pkg := range map[string]string{
		appName:    "./cmd/web",
		"storectl": "./cmd/tools/storectl",
	} {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	if runtime.GOOS == "windows" {
		fmt.Println("Note: -race on Windows may be unsupported depending on your toolchain.")
	}
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./templates", "./web", "./magefile.go")
}

func Lint() error {
	fmt.Println("Linting (golangci-lint)...")
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found. Install with: mage Tools")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Fmt, Lint, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	fmt.Println("Tidying go.mod/go.sum...")
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	fmt.Println("Cleaning...")
	_ = os.RemoveAll(binDir)
	_ = os.RemoveAll(tmpDir)
	return nil
}

// Migrate creates the tables for DB_DRIVER/DB_DSN.
func Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/storectl", "migrate")
}

// Seed loads catalog.yaml (override with CATALOG) and images from ./seed/images.
func Seed() error {
	file := os.Getenv("CATALOG")
	if file == "" {
		file = "catalog.yaml"
	}
	args := []string{"run", "./cmd/tools/storectl", "seed", "--file", file}
	if st, err := os.Stat(filepath.Join("seed", "images")); err == nil && st.IsDir() {
		args = append(args, "--images", filepath.Join("seed", "images"))
	}
	return sh.RunV("go", args...)
}

// Tools installs air, templ and golangci-lint. templ is pinned to the
// version in go.mod so generated code matches the runtime.
func Tools() error {
	fmt.Println("Installing tools (air, templ, golangci-lint)...")

	if err := sh.RunV("go", "install", "github.com/air-verse/air@latest"); err != nil {
		return err
	}
	if err := sh.RunV("go", "install", "github.com/a-h/templ/cmd/templ@v0.2.793"); err != nil {
		return err
	}
	if err := sh.RunV("go", "install", "github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest"); err != nil {
		return err
	}

	for _, bin := range []string{"air", "templ", "golangci-lint"} {
		if _, err := exec.LookPath(bin); err != nil && !errors.Is(err, exec.ErrNotFound) {
			return err
		}
	}

	fmt.Println("Tools installed. Ensure GOBIN/GOPATH/bin is in PATH.")
	return nil
}

// cgo is on by default because the sqlite driver needs it.
func cgo() string {
	if v := os.Getenv("CGO_ENABLED"); v != "" {
		return v
	}
	return "1"
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
