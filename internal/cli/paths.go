package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pathsJSON bool

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved path registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		snapshot := a.Paths().Snapshot()
		out := cmd.OutOrStdout()

		if pathsJSON {
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling paths: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		for _, name := range a.Paths().Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, snapshot[name])
		}
		return w.Flush()
	},
}

func init() {
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(pathsCmd)
}
