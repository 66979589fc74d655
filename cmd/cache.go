package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fling-dev/fling/internal/cache"
	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/icons"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the registry cache",
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect [n]",
	Short: "Show the most-launched cached entries",
	Long: `Show up to n cached entries (default 20) ordered by launch count,
with their resolved icon paths.

Examples:
  fling cache inspect
  fling cache inspect 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 20
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 1 {
				return fmt.Errorf("invalid count %q", args[0])
			}
			n = parsed
		}

		start := time.Now()
		path, err := cachePath()
		if err != nil {
			return err
		}
		store, err := cache.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		top, err := store.Top(n)
		if err != nil {
			return err
		}
		if len(top) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
			return nil
		}

		resolver := icons.New(desktop.DataDirs())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLAUNCHES\tICON")
		for _, entry := range top {
			iconPath := "-"
			if resolved, ok := resolver.Resolve(entry.Icon); ok {
				iconPath = resolved
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Name, entry.LaunchCount, iconPath)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries in %s\n", len(top), time.Since(start).Round(time.Microsecond))
		return nil
	},
}

var cacheResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the registry cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}
		if err := cache.Reset(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache reset")
		return nil
	},
}

func cachePath() (string, error) {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path, nil
	}
	return cache.DefaultPath()
}

func init() {
	cacheCmd.AddCommand(cacheInspectCmd)
	cacheCmd.AddCommand(cacheResetCmd)
	rootCmd.AddCommand(cacheCmd)
}
