//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "poplingo"

var Default = Build

// Build compiles the poplingo binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/poplingo")
}

// Install installs poplingo into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/poplingo")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check vets and tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Dev runs the HTTP API with debug logging
func Dev() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "serve", "--log-level", "debug")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binary)
}
