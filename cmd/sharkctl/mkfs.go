package main

import (
	"fmt"

	"github.com/lemonshark/sharkkit/internal/align"
	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/lemonshark/sharkkit/ramfs"
	"github.com/spf13/cobra"
)

var mkfsSize string

func init() {
	cmd := newMkfsCmd()
	cmd.Flags().StringVar(&mkfsSize, "size", "1M", "Volume size (accepts K/M/G suffixes)")
	rootCmd.AddCommand(cmd)
}

func newMkfsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkfs <image>",
		Short: "Create and format a new volume image",
		Long: `The mkfs command creates a new image file and formats it with an empty
filesystem. The size is rounded up to a whole number of blocks; the file
must not already exist.

Example:
  sharkctl mkfs disk.img
  sharkctl mkfs disk.img --size 4M
  sharkctl mkfs disk.img --size 64K --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkfs(args)
		},
	}
	return cmd
}

func runMkfs(args []string) error {
	imgPath := args[0]

	requested, err := parseSize(mkfsSize)
	if err != nil {
		return fmt.Errorf("failed to parse size: %w", err)
	}
	size := align.Up(requested, ramfs.BlockSize)
	if size != requested {
		printVerbose("Rounding size up from %d to %d bytes\n", requested, size)
	}

	printVerbose("Creating image: %s\n", imgPath)

	if err := sharkfs.Mkfs(imgPath, int64(size)); err != nil {
		return fmt.Errorf("failed to create filesystem: %w", err)
	}

	blocks := size / ramfs.BlockSize

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":   imgPath,
			"size":    size,
			"blocks":  blocks,
			"success": true,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\n✓ Created %s\n", imgPath)
	printInfo("  Size: %s (%d blocks of %d bytes)\n", formatBytes(int64(size)), blocks, ramfs.BlockSize)

	return nil
}
