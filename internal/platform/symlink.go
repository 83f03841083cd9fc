package platform

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/knife-kitchen/kitchen/internal/branding"
)

// IsSymlinkSupported reports whether the current process can create native
// symlinks. On Windows this needs developer mode or elevation, so a test
// link is attempted.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	dir, err := os.MkdirTemp("", "."+branding.CLIName()+"-symlink-test")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	return os.Symlink(dir, filepath.Join(dir, "link")) == nil
}
