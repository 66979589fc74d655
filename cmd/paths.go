package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fling-dev/fling/internal/desktop"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the descriptor search directories",
	Long: `Print the application descriptor search directories in priority order,
one per line. The first directory wins when two provide the same
descriptor ID.

Examples:
  fling paths
  fling paths --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, dir := range desktop.DataDirs() {
			if !verbose {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				continue
			}
			status := "missing"
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				status = "ok"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", dir, status)
		}
		return nil
	},
}

func init() {
	pathsCmd.Flags().BoolP("verbose", "v", false, "show whether each directory exists")
	rootCmd.AddCommand(pathsCmd)
}
