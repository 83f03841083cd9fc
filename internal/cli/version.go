package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/knife-kitchen/kitchen/internal/branding"
	"github.com/knife-kitchen/kitchen/internal/platform"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the build version along with the Go toolchain and platform the
binary was built for. Include this output when reporting a problem.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		switch {
		case versionShort:
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			return err
		case versionJSON:
			return info.writeJSON(cmd.OutOrStdout())
		default:
			return info.writeText(cmd.OutOrStdout())
		}
	},
}

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Go:       runtime.Version(),
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		Platform: platform.Current().String(),
	}
}

func (b buildInfo) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n%s %s/%s, %s platform\n",
		branding.CLIName(), b.Version, b.Commit, b.Date, b.Go, b.OS, b.Arch, b.Platform)
	return err
}

func (b buildInfo) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding version info: %w", err)
	}
	return nil
}
