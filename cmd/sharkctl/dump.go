package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Hexdump the non-empty blocks of an image",
		Long: `The dump command prints a block-by-block hexdump of a volume image.
All-zero blocks are skipped, so the output shows the superblock, the used
part of the inode table, and any data blocks with content.

Example:
  sharkctl dump disk.img
  sharkctl dump disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	imgPath := args[0]

	printVerbose("Opening image: %s\n", imgPath)

	// Output as JSON if requested
	if jsonOut {
		var buf bytes.Buffer
		if err := sharkfs.Dump(imgPath, &buf); err != nil {
			return fmt.Errorf("failed to dump image: %w", err)
		}
		result := map[string]interface{}{
			"image": imgPath,
			"dump":  buf.String(),
		}
		return printJSON(result)
	}

	// The dump is the output, so it bypasses the quiet flag.
	if err := sharkfs.Dump(imgPath, os.Stdout); err != nil {
		return fmt.Errorf("failed to dump image: %w", err)
	}

	return nil
}
