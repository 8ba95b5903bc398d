// Package version resolves the release identifier of the running application.
package version

import (
	"github.com/maloquacious/semver"
)

// Provider returns a stable identifier for the installed build. It returns
// "" when the identifier cannot be resolved.
type Provider interface {
	CurrentVersion() string
}

// Static always reports the same identifier.
type Static string

func (s Static) CurrentVersion() string {
	return string(s)
}

// Semver reports a semantic version as its canonical string, build
// metadata included.
type Semver struct {
	Version semver.Version
}

func (s Semver) CurrentVersion() string {
	return s.Version.String()
}
