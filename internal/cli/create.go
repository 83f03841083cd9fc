package cli

import (
	"errors"
	"fmt"

	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/cookbook"
	"github.com/knife-kitchen/kitchen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	errNoCookbookName = errors.New("You must specify a cookbook name")
	errInvalidPort    = errors.New("invalid --winrm_port")
)

var (
	createVagrantBox    string
	createVagrantBoxURL string
	createReviewHost    string
	createTemplate      string
	createWinRMPort     int
	createBoxHostname   string
)

func init() {
	f := createCmd.Flags()
	f.StringVar(&createVagrantBox, "vagrant_box", "", "Name of the vagrant box to test with")
	f.StringVar(&createVagrantBoxURL, "vagrant_box_url", "", "URL to download the vagrant box from")
	f.StringVar(&createReviewHost, "reviewhost", "", "FQDN of the Gerrit server")
	f.StringVar(&createTemplate, "kitchen_template", scaffold.DefaultSet, "Name of the kitchen template set")
	f.IntVar(&createWinRMPort, "winrm_port", scaffold.DefaultWinRMPort, "Host port forwarded to WinRM on the test box")
	f.StringVar(&createBoxHostname, "box_hostname", scaffold.DefaultBoxHostname, "Hostname of the test box")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create COOKBOOK",
	Short: "Create a cookbook with test-kitchen scaffolding",
	Long: `Create a cookbook under the first cookbook_path entry and render a kitchen
template set into it. Files that already exist are never overwritten, so the
command is safe to re-run on an existing cookbook.

Examples:
  knife-kitchen create my_cookbook
  knife-kitchen create my_cookbook --kitchen_template windows --winrm_port 5986`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errNoCookbookName
	}
	name := args[0]
	if err := cookbook.ValidateName(name); err != nil {
		return err
	}
	if createWinRMPort < 1 || createWinRMPort > 65535 {
		return fmt.Errorf("%w %d: must be between 1 and 65535", errInvalidPort, createWinRMPort)
	}

	s, err := loadSettings(cmd, map[string]string{
		"vagrant_box":     config.KeyVagrantBox,
		"vagrant_box_url": config.KeyVagrantBoxURL,
		"reviewhost":      config.KeyReviewHost,
	})
	if err != nil {
		return err
	}

	dir, err := cookbook.Dir(name, s)
	if err != nil {
		return err
	}
	set, err := scaffold.FindSet(createTemplate, s.KitchenTemplatesPath)
	if err != nil {
		return err
	}
	logger.Debug("using template set", "name", set.Name, "origin", set.Origin, "location", set.Location)

	params := cookbook.ContextParams(name, s)
	params.WinRMPort = createWinRMPort
	params.BoxHostname = createBoxHostname
	ctx := scaffold.NewContext(params)

	opts := []scaffold.Option{
		scaffold.WithOutput(cmd.OutOrStdout()),
		scaffold.WithLogger(logger),
	}
	if _, err := cookbook.Create(name, s, ctx, opts...); err != nil {
		return err
	}
	result, err := set.Scaffold(dir, ctx, opts...)
	if err != nil {
		return fmt.Errorf("rendering template set %s: %w", set.Name, err)
	}

	logger.Debug("kitchen scaffolding complete",
		"dir", result.TargetDir, "files", len(result.Files), "skipped", len(result.Skipped))
	return nil
}
