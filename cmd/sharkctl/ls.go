package main

import (
	"fmt"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

var lsLong bool

func init() {
	cmd := newLsCmd()
	cmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Long listing with inode and size")
	rootCmd.AddCommand(cmd)
}

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <image> [path]",
		Short: "List a directory",
		Long: `The ls command lists the entries of a directory in a volume image.
If no path is specified, lists the root directory.

Example:
  sharkctl ls disk.img
  sharkctl ls disk.img /docs
  sharkctl ls disk.img /docs --long
  sharkctl ls disk.img --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args)
		},
	}
	return cmd
}

func runLs(args []string) error {
	imgPath := args[0]
	dirPath := "/"
	if len(args) > 1 {
		dirPath = args[1]
	}

	printVerbose("Opening image: %s\n", imgPath)

	entries, err := sharkfs.List(imgPath, dirPath)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":   imgPath,
			"path":    dirPath,
			"entries": entries,
			"count":   len(entries),
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\nContents of %s:\n", dirPath)

	for _, e := range entries {
		name := e.Name
		if e.Dir {
			name += "/"
		}
		if lsLong {
			printInfo("  %4d %8d  %s\n", e.Ino, e.Size, name)
		} else {
			printInfo("  %s\n", name)
		}
	}

	printInfo("\nTotal: %d entries\n", len(entries))

	return nil
}
