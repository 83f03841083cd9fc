package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knife-kitchen/kitchen/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit config path. When empty, KITCHEN_CONFIG and
	// then FindConfigFile are consulted.
	ConfigFile string

	// WorkDir starts the upward config search. Defaults to the working directory.
	WorkDir string

	// Home is the user's home directory. Defaults to HomeDir().
	Home string

	// Flags, when set, overrides settings with any changed flag listed in
	// FlagKeys (flag name -> setting key).
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
}

// Load merges the config file, environment and flags into Settings.
//
// A config file that was named explicitly but does not exist is not an
// error: Settings.ConfigFile still records the path so callers can report
// it. A config file that exists but cannot be read or parsed, including one
// in a format viper does not know (knife.rb), yields a *FileError alongside
// the partially loaded Settings.
func Load(opts Options) (*Settings, error) {
	home := opts.Home
	if home == "" {
		home = HomeDir()
	}
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = wd
	}

	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for _, key := range Keys {
		if key == KeyConfigFile {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(branding.EnvVar("config"))
	}
	if configFile == "" {
		configFile = FindConfigFile(workDir, home)
	}
	var fileErr *FileError
	if configFile != "" && fileExists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			fileErr = &FileError{Path: configFile, Err: err}
		}
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	paths, err := toPathList(v.Get(KeyCookbookPath))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyCookbookPath, err)
	}
	s.CookbookPath = paths
	s.ConfigFile = configFile

	if s.KitchenTemplatesPath == "" {
		s.KitchenTemplatesPath = DefaultTemplatesPath(configFile, home)
	}

	if fileErr != nil {
		return &s, fileErr
	}
	return &s, nil
}

// FileError reports a knife config file that exists but could not be read.
// Load returns it together with the settings gathered from the environment
// and flags, so callers that only need to report the problem can go on.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("reading config file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Unsupported reports whether the file's extension is not a known format.
func (e *FileError) Unsupported() bool {
	var unsupported viper.UnsupportedConfigError
	return errors.As(e.Err, &unsupported)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultTemplatesPath returns plugins/knife/kitchen_templates next to the
// config file, or under ~/.chef when no config file is known.
func DefaultTemplatesPath(configFile, home string) string {
	base := filepath.Join(home, branding.ConfigDir())
	if configFile != "" {
		base = filepath.Dir(configFile)
	}
	return filepath.Join(base, "plugins", "knife", "kitchen_templates")
}
