package platform

import "runtime"

// Family groups operating systems by the line-ending convention git
// should be configured for.
type Family int

const (
	// Unknown is any OS we have no line-ending expectation for.
	Unknown Family = iota
	// Unix covers Linux, macOS and the BSDs.
	Unix
	// Windows covers native Windows builds, including MinGW and Cygwin shells.
	Windows
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case Unix:
		return "OSX/Linux"
	case Windows:
		return "Windows"
	default:
		return "unknown"
	}
}

// FamilyOf maps a GOOS value to its Family.
func FamilyOf(goos string) Family {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return Unix
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// Current returns the Family of the running binary.
func Current() Family {
	return FamilyOf(runtime.GOOS)
}

// ExpectedAutoCRLF returns the core.autocrlf value git should use on f.
// The second result is false when f has no expectation.
func (f Family) ExpectedAutoCRLF() (string, bool) {
	switch f {
	case Unix:
		return "input", true
	case Windows:
		return "true", true
	default:
		return "", false
	}
}
