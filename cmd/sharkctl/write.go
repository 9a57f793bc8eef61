package main

import (
	"fmt"
	"os"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

var writeFromFile string

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeFromFile, "file", "", "Read content from a host file instead of the command line")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <image> <path> [text]",
		Short: "Append to a file, creating it if needed",
		Long: `The write command appends content to a file in a volume image. The file
is created when it does not exist yet. Content comes from the command line
or, with --file, from a host file.

Example:
  sharkctl write disk.img /notes "remember the header granularity"
  sharkctl write disk.img /docs/readme --file README.md`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	imgPath := args[0]
	filePath := args[1]

	var data []byte
	switch {
	case writeFromFile != "" && len(args) > 2:
		return fmt.Errorf("both inline text and --file given; pick one")
	case writeFromFile != "":
		b, err := os.ReadFile(writeFromFile)
		if err != nil {
			return fmt.Errorf("failed to read host file: %w", err)
		}
		data = b
	case len(args) > 2:
		data = []byte(args[2])
	default:
		return fmt.Errorf("no content: pass text or --file")
	}

	printVerbose("Opening image: %s\n", imgPath)

	n, err := sharkfs.WriteFile(imgPath, filePath, data)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":   imgPath,
			"path":    filePath,
			"bytes":   n,
			"success": true,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("✓ Appended %d bytes to %s\n", n, filePath)

	return nil
}
