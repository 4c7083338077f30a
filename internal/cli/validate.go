package cli

import (
	"fmt"

	"github.com/overlook-labs/overlook/internal/branding"
	"github.com/overlook-labs/overlook/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a project file against the schema",
	Long: `Validate a project file against the embedded JSON schema.

Without an argument the file named by --config, or ./` + branding.ProjectFile() + `, is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = branding.ProjectFile()
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Valid {
		fmt.Fprintf(out, "%s is invalid:\n", path)
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s\n", issue)
		}
		return fmt.Errorf("%s: %d validation issue(s)", path, len(result.Issues))
	}

	project, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	if project.Name != "" {
		fmt.Fprintf(out, "%s (%s) is valid.\n", path, project.Name)
	} else {
		fmt.Fprintf(out, "%s is valid.\n", path)
	}
	return nil
}
