package cli

import (
	"fmt"
	"path/filepath"

	"github.com/overlook-labs/overlook/internal/branding"
	"github.com/overlook-labs/overlook/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	initName      string
	initRoutesDir string
	initExt       string
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Project name (default: directory name)")
	initCmd.Flags().StringVar(&initRoutesDir, "routes-dir", "routes", "Routes directory, relative to the project")
	initCmd.Flags().StringVar(&initExt, "ext", "js", "Route file extension")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new project",
	Long: `Create ` + branding.ProjectFile() + ` and an index route in dir (default: the current directory).

Existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	name := initName
	if name == "" {
		name = filepath.Base(abs)
	}

	result, err := scaffold.GenerateOS(abs, scaffold.NewData(name, initRoutesDir, initExt, buildVersion))
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created project in %s\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	if dir != "." {
		fmt.Fprintf(out, "\nNext: cd %s && %s routes\n", dir, branding.CLIName())
	} else {
		fmt.Fprintf(out, "\nNext: %s routes\n", branding.CLIName())
	}
	return nil
}

