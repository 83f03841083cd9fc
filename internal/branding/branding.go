// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed so forks can rename the binary,
// the config directory and the environment prefix without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	ConfigDir    string `yaml:"config_dir"`
	ConfigName   string `yaml:"config_name"`
	EnvPrefix    string `yaml:"env_prefix"`
	BerkshelfDir string `yaml:"berkshelf_dir"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:      "knife-kitchen",
			DisplayName:  "Knife Kitchen",
			Description:  "Test-kitchen scaffolding and workstation diagnostics for Chef cookbooks",
			ConfigDir:    ".chef",
			ConfigName:   "knife",
			EnvPrefix:    "KITCHEN",
			BerkshelfDir: ".berkshelf",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "knife-kitchen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the dot-directory that holds the knife config (e.g., ".chef").
func ConfigDir() string { load(); return defaults.ConfigDir }

// ConfigName returns the knife config file name without extension (e.g., "knife").
func ConfigName() string { load(); return defaults.ConfigName }

// EnvPrefix returns the environment variable prefix (e.g., "KITCHEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// BerkshelfDir returns the Berkshelf dot-directory under $HOME.
func BerkshelfDir() string { load(); return defaults.BerkshelfDir }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("config") → "KITCHEN_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
