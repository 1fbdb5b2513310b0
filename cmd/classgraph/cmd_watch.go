package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/classgraph/java/codebase"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Keep a directory parsed and report failures as files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, sourceArg(args), debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, debounceFlagName, viper.GetDuration(watchDebounceKey), "quiet period before changes are applied")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, dir string, debounce time.Duration) error {
	c := codebase.New(dir, workers())
	if err := c.ScanAll(ctx); err != nil {
		return err
	}
	report := func(project *codebase.Project, failures codebase.Failures) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d declarations, %d failures\n",
			time.Now().Format(time.TimeOnly), len(project.Types), len(failures))
		if err := reportFailures(cmd, failures); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}
	report(c.Project(), c.Failures())

	w, err := codebase.NewWatcher(c, debounce, report)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", dir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
