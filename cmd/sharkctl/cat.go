package main

import (
	"fmt"
	"os"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCatCmd())
}

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <image> <path>",
		Short: "Print a file's content",
		Long: `The cat command reads a file from a volume image and writes its content
to standard output.

Example:
  sharkctl cat disk.img /docs/readme
  sharkctl cat disk.img /docs/readme --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args)
		},
	}
	return cmd
}

func runCat(args []string) error {
	imgPath := args[0]
	filePath := args[1]

	printVerbose("Opening image: %s\n", imgPath)

	data, err := sharkfs.ReadFile(imgPath, filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":   imgPath,
			"path":    filePath,
			"size":    len(data),
			"content": string(data),
		}
		return printJSON(result)
	}

	// The content is the output, so it bypasses the quiet flag.
	_, err = os.Stdout.Write(data)
	return err
}
