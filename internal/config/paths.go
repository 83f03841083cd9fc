package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knife-kitchen/kitchen/internal/branding"
)

// ConfigExtensions are the knife config formats searched for, in order.
var ConfigExtensions = []string{"yaml", "yml", "json", "toml"}

// HomeDir returns the user's home directory, or "." if it cannot be resolved.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// FindConfigFile returns the first knife config found in a .chef directory
// of workDir or one of its ancestors, then in home/.chef. It returns "" when
// none exists.
func FindConfigFile(workDir, home string) string {
	dir, err := filepath.Abs(workDir)
	if err == nil {
		for {
			if f := configIn(filepath.Join(dir, branding.ConfigDir())); f != "" {
				return f
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if home != "" {
		return configIn(filepath.Join(home, branding.ConfigDir()))
	}
	return ""
}

func configIn(dir string) string {
	for _, ext := range ConfigExtensions {
		f := filepath.Join(dir, branding.ConfigName()+"."+ext)
		if info, err := os.Stat(f); err == nil && info.Mode().IsRegular() {
			return f
		}
	}
	return ""
}

// ExpandPath expands a leading "~" to the home directory and returns an
// absolute, cleaned path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		path = filepath.Join(HomeDir(), path[1:])
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
