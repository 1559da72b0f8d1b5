// Package version exposes the build version of holocron.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// version is set at build time via -ldflags "-X github.com/rshade/holocron/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overwritten by the linker.
var version = "0.1.0-dev"

// devVersion is reported when the linked version is not valid semver.
const devVersion = "0.0.0-dev"

// GetVersion returns the normalized build version without a leading "v".
// Values that do not parse as semver are reported as devVersion.
func GetVersion() string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// UserAgent returns the User-Agent string sent with every API request.
func UserAgent() string {
	return "holocron/" + GetVersion()
}
