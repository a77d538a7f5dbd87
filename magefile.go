//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "sheetlate"

// Default target to run when none is specified
var Default = Build

// Build compiles the sheetlate binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/"+binary)
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/"+binary)
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(filepath.Join(".", binary))
}

// Run builds and starts the pipeline status view of the current directory
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "--status")
}

func init() {
	if os.Getenv("CGO_ENABLED") == "" {
		// go-sqlite3 needs cgo
		os.Setenv("CGO_ENABLED", "1")
	}
}
