package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := newHeapCmd()
	cmd.AddCommand(newHeapSimCmd())
	cmd.AddCommand(newHeapBenchCmd())
	rootCmd.AddCommand(cmd)
}

func newHeapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heap",
		Short: "Exercise the kernel heap allocator",
		Long: `The heap commands drive an in-memory instance of the kernel heap
allocator: sim runs a small op script against a fresh heap, bench times
alloc/free rounds.`,
	}
}
