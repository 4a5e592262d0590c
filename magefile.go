//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// Build compiles the portal daemon and the newsportal CLI into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0777); err != nil {
		return err
	}
	if err := sh.RunV("go", "build", "-o", binDir+"/portald", "./cmd/portald"); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", binDir+"/newsportal", ".")
}

// Test runs every package's tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Snapshot renders the home feed into .site/.
func Snapshot() error {
	mg.Deps(Build)
	return sh.RunV(binDir+"/newsportal", "snapshot")
}
