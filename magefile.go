// +build mage

package main

import (
	"log"
	"os"
	"path"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// MageRoot is the location of this file, populated by initPaths().
var MageRoot string

func initPaths() {
	must := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}
	var err error
	MageRoot, err = os.Getwd()
	must(err)
}

var Default = Build

// Build compiles the atm-cli binary.
func Build() {
	initPaths()
	if err := sh.Run("go", "build", "./..."); err != nil {
		log.Fatal(err)
	}
}

// Vet runs go vet across the module.
func Vet() {
	if err := sh.Run("go", "vet", "./..."); err != nil {
		log.Fatal(err)
	}
}

// Lint runs go vet as a fast substitute for a full linter; gofmt -l flags
// any unformatted files.
func Lint() {
	mg.Deps(Vet)
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		log.Fatal(err)
	}
	if out != "" {
		log.Fatalf("gofmt found unformatted files:\n%s", out)
	}
}

// Test runs the full test suite.
func Test() {
	mg.Deps(Build)
	if err := sh.Run("go", "test", "./..."); err != nil {
		log.Fatal(err)
	}
}

// Clean removes the built binary.
func Clean() {
	initPaths()
	_ = os.Remove(path.Join(MageRoot, "atm-cli"))
}
