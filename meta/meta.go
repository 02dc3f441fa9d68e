// Package meta provides versioning information.
package meta

import (
	"fmt"
	"runtime"
	"strings"
)

const placeholder = "unknown"

// Git SHA of the build (full and abbreviated). Populated at build time.
var (
	GitSHAFull = placeholder
	GitSHA     = placeholder
)

// Populated returns whether build information has been populated.
func Populated() bool {
	return GitSHA != placeholder
}

// Platform identifies a piece of software and the operating system it runs
// on.
type Platform struct {
	Software string
	Version  string
	OS       string
}

func NewPlatform(software, version, os string) Platform {
	return Platform{
		Software: software,
		Version:  version,
		OS:       os,
	}
}

func NewPlatformHostOS(software, version string) Platform {
	return NewPlatform(software, version, runtime.GOOS)
}

func (p Platform) String() string {
	return fmt.Sprintf("%s %s on %s", p.Software, p.Version, strings.Title(p.OS))
}

// Build is a platform string identifying this build.
var Build = NewPlatformHostOS("Keystream", GitSHA)
