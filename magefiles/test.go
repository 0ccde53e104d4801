//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs all unit tests.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs all unit tests with the race detector; the cache and converter tests
// exercise concurrent readers and writers.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}

// Runs go vet, then the race tests.
func Check() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	mg.Deps(Test.Race)
	return nil
}
