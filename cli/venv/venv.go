// Package venv creates Python virtual environments and installs packages into them.
package venv

import (
	"fmt"

	"github.com/apex/log"
)

// Builder creates a virtual environment and installs packages into it.
type Builder interface {
	// InitVenv creates a virtual environment at path.
	InitVenv(path string) error
	// InstallPackages installs packages into the initialized environment.
	InstallPackages(names []string) error
}

// Bootstrap initializes a virtual environment at path and installs packages.
// Installation is skipped if packages list is empty.
func Bootstrap(path string, builder Builder, packages []string) error {
	log.Infof("Creating virtual environment in %s", path)
	if err := builder.InitVenv(path); err != nil {
		return err
	}

	if len(packages) == 0 {
		return nil
	}
	log.Infof("Installing packages: %v", packages)
	if err := builder.InstallPackages(packages); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}
	return nil
}
