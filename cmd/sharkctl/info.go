package main

import (
	"fmt"
	"os"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Validate an image superblock and report usage",
		Long: `The info command mounts a volume image and displays its geometry and
usage: block size, total and free blocks, inode counts, and limits.

Example:
  sharkctl info disk.img
  sharkctl info disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	imgPath := args[0]

	printVerbose("Opening image: %s\n", imgPath)

	info, err := sharkfs.Info(imgPath)
	if err != nil {
		return fmt.Errorf("failed to get volume info: %w", err)
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	// Text output
	printInfo("\nVolume Information:\n")
	printInfo("  File: %s\n", imgPath)

	if stat, err := os.Stat(imgPath); err == nil {
		printInfo("  Size: %s (%s bytes)\n", formatBytes(stat.Size()), formatNumber(stat.Size()))
	}

	usedBlocks := info.TotalBlocks - info.FreeBlocks
	printInfo("  Block size: %d bytes\n", info.BlockSize)
	printInfo("  Blocks: %d used / %d total (%.1f%%)\n",
		usedBlocks, info.TotalBlocks, float64(usedBlocks)*100.0/float64(info.TotalBlocks))
	printInfo("  Inodes: %d used / %d total\n", info.UsedInodes, info.Inodes)
	printInfo("  Data starts at block %d\n", info.DataStart)
	printInfo("  Max file size: %s\n", formatBytes(int64(info.MaxFileSize)))

	return nil
}
