package cli

import (
	"errors"

	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/console"
	"github.com/knife-kitchen/kitchen/internal/doctor"
	"github.com/knife-kitchen/kitchen/internal/gitconfig"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your workstation for cookbook development",
	Long: `Run diagnostic checks on the knife config, chef keys, proxies, git/Gerrit,
Vagrant and Berkshelf settings. Each check prints an OK or WARN line; only
a missing or unreadable knife config is fatal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd, nil)
		var fileErr *config.FileError
		if err != nil && !errors.As(err, &fileErr) {
			return err
		}

		w := console.New(cmd.OutOrStdout(), noColor)
		d := doctor.New(s,
			doctor.WithOutput(w),
			doctor.WithGit(gitconfig.New(logger)),
			doctor.WithConfigError(fileErr),
			doctor.WithLogger(logger),
		)
		if err := d.Run(cmd.Context()); err != nil {
			return err
		}
		logger.Debug("doctor finished", "warnings", w.Warnings())
		return nil
	},
}
