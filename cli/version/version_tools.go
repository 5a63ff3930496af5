package version

import (
	"fmt"
	"regexp"

	goVersion "github.com/hashicorp/go-version"
)

// toolVersionRe matches the version part of `<tool> --version` outputs like
// "Python 3.12.1" or "ruff 0.4.2".
var toolVersionRe = regexp.MustCompile(`(\d+(?:\.\d+){0,2}(?:[a-z]+\d*)?)`)

// ParseToolVersion extracts a version from a tool `--version` output.
func ParseToolVersion(output string) (*goVersion.Version, error) {
	match := toolVersionRe.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version found in %q", output)
	}
	return goVersion.NewVersion(match)
}

// CheckMinimal returns an error if the version is lower than the minimal one.
func CheckMinimal(ver *goVersion.Version, minimal string) error {
	minVersion, err := goVersion.NewVersion(minimal)
	if err != nil {
		return fmt.Errorf("invalid minimal version %q: %s", minimal, err)
	}
	if ver.LessThan(minVersion) {
		return fmt.Errorf("version %s is lower than required %s", ver, minVersion)
	}
	return nil
}
