//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Format runs gofmt on all Go files.
func Format() error {
	fmt.Println("Running gofmt...")
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet on every package.
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all tests.
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Build compiles every package.
func Build() error {
	fmt.Println("Building...")
	return sh.RunV("go", "build", "./...")
}

// PreCommit runs format, vet, test, and build, in that order.
func PreCommit() error {
	mg.Deps(Format)
	mg.Deps(Vet)
	mg.Deps(Test)
	mg.Deps(Build)
	fmt.Println("All pre-commit checks passed.")
	return nil
}

// CI runs the same checks as PreCommit.
func CI() error {
	return PreCommit()
}

// Default target runs PreCommit.
var Default = PreCommit
