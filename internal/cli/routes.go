package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/overlook-labs/overlook/internal/routetree"
	"github.com/spf13/cobra"
)

var (
	routesJSON bool
	routesSync bool
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Load and list the route tree",
	Long: `Load the routes directory and print every route, parents first.

Directories are read concurrently unless --sync is given.`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	routesCmd.Flags().BoolVar(&routesJSON, "json", false, "Output in JSON format")
	routesCmd.Flags().BoolVar(&routesSync, "sync", false, "Read directories one at a time")
	rootCmd.AddCommand(routesCmd)
}

// routeEntry represents a loaded route for display.
type routeEntry struct {
	Path  string            `json:"path"`
	File  string            `json:"file,omitempty"`
	Dir   string            `json:"dir,omitempty"`
	Files map[string]string `json:"files,omitempty"`
}

func runRoutes(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	load := a.LoadRoutes
	if routesSync {
		load = a.LoadRoutesSync
	}
	if _, err := load(cmd.Context()); err != nil {
		return err
	}

	entries := routeEntries(a.Routes())
	out := cmd.OutOrStdout()

	if routesJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling routes: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tFILE\tOTHER FILES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Path, orDash(e.File), orDash(formatFiles(e.Files)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d routes\n", len(entries))
	return nil
}

func routeEntries(routes []*routetree.Route) []routeEntry {
	entries := make([]routeEntry, 0, len(routes))
	for _, r := range routes {
		e := routeEntry{Path: r.Path, File: r.File, Dir: r.Dir}
		if len(r.Files) > 0 {
			e.Files = r.Files
		}
		entries = append(entries, e)
	}
	return entries
}

func formatFiles(files map[string]string) string {
	parts := make([]string, 0, len(files))
	for _, typ := range slices.Sorted(maps.Keys(files)) {
		parts = append(parts, typ+"="+files[typ])
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
