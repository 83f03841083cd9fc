package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/knife-kitchen/kitchen/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available kitchen template sets",
	Long: `List the template sets create can render. Sets in kitchen_templates_path
shadow built-in sets of the same name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd, nil)
		if err != nil {
			return err
		}
		sets, err := scaffold.ListSets(s.KitchenTemplatesPath)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tORIGIN\tLOCATION")
		for _, set := range sets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", set.Name, set.Origin, set.Location)
		}
		return w.Flush()
	},
}
