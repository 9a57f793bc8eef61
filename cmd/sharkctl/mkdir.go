package main

import (
	"fmt"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newMkdirCmd())
}

func newMkdirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir <image> <path>",
		Short: "Create a directory",
		Long: `The mkdir command creates a directory in a volume image. The parent
directory must already exist.

Example:
  sharkctl mkdir disk.img /docs
  sharkctl mkdir disk.img /docs/drafts`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkdir(args)
		},
	}
	return cmd
}

func runMkdir(args []string) error {
	imgPath := args[0]
	dirPath := args[1]

	printVerbose("Opening image: %s\n", imgPath)

	if err := sharkfs.Mkdir(imgPath, dirPath); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":   imgPath,
			"path":    dirPath,
			"success": true,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("✓ Created directory %s\n", dirPath)

	return nil
}
