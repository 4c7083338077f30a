package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the application and wait for a signal",
	Long: `Run the start hooks, load the routes, and keep running until
SIGINT or SIGTERM is received. The stop hooks then run before exiting.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}
	root, _ := a.GetPath("root")
	fmt.Fprintf(cmd.OutOrStdout(), "Started %s with %d routes. Press Ctrl+C to stop.\n", root, len(a.Routes()))

	<-ctx.Done()
	stop()

	// The signal context is done; stop hooks get a fresh one.
	if err := a.Stop(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
	return nil
}
