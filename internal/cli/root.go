package cli

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/charmbracelet/log"
	"github.com/knife-kitchen/kitchen/internal/branding"
	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	configFile   string
	cookbookPath string
	verbose      bool
	noColor      bool
)

var logger = log.New(os.Stderr)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates test-kitchen scaffolding for Chef cookbooks and checks
that a workstation is set up for cookbook development.

Settings are read from .chef/knife.yaml in the working directory or any
parent, falling back to ~/.chef/knife.yaml. Every setting can be overridden
with a ` + branding.EnvPrefix() + `_<SETTING> environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Path to the knife config file")
	pf.StringVarP(&cookbookPath, "cookbook-path", "o", "", "Directory cookbooks live in (overrides cookbook_path)")
	pf.BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command with build info injected via ldflags.
// Errors are reported on stderr as FATAL lines.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "FATAL: %v\n", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: branding.CLIName()})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// loadSettings merges the knife config, environment and the command's
// flags. flagKeys maps command-local flag names to setting keys. When the
// config file exists but cannot be read, the partial settings are returned
// with the *config.FileError.
func loadSettings(cmd *cobra.Command, flagKeys map[string]string) (*config.Settings, error) {
	keys := map[string]string{"cookbook-path": config.KeyCookbookPath}
	maps.Copy(keys, flagKeys)

	s, err := config.Load(config.Options{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
		FlagKeys:   keys,
	})
	if s == nil {
		return nil, err
	}
	logger.Debug("loaded settings", "config_file", s.ConfigFile, "cookbook_path", s.CookbookPath.String())
	return s, err
}
