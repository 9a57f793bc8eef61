package main

import (
	"fmt"
	"time"

	"github.com/lemonshark/sharkkit/heap"
	"github.com/lemonshark/sharkkit/internal/align"
	"github.com/spf13/cobra"
)

var (
	benchRounds int
	benchSize   string
)

// benchSizes is the request mix one round cycles through, small sizes
// weighted the way kernel allocations run.
var benchSizes = []uint64{16, 64, 32, 256, 64, 1024, 128, 4096}

// benchWindow caps the live set; past it the oldest allocation is freed
// each round, so the free list keeps splitting and coalescing.
const benchWindow = 64

func newHeapBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time alloc/free rounds against a fresh heap",
		Long: `The bench command runs timed rounds of allocations against a fresh
heap, freeing the oldest allocation once a fixed number are live. After
the rounds everything is freed and the heap invariants are swept.

Example:
  sharkctl heap bench
  sharkctl heap bench --rounds 100000 --size 4M --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeapBench()
		},
	}
	cmd.Flags().IntVar(&benchRounds, "rounds", 10000, "Number of allocation rounds")
	cmd.Flags().StringVar(&benchSize, "size", "1M", "Heap region size (accepts K/M/G suffixes)")
	return cmd
}

func runHeapBench() error {
	if benchRounds <= 0 {
		return fmt.Errorf("rounds must be positive")
	}
	requested, err := parseSize(benchSize)
	if err != nil {
		return fmt.Errorf("failed to parse size: %w", err)
	}
	size := align.Up(requested, heap.HeaderSize)

	kh := heap.NewKernelHeap(nil)
	if err := kh.Init(make([]byte, size)); err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	printVerbose("Running %d rounds against a %d-byte region\n", benchRounds, size)

	type liveAlloc struct {
		ref  heap.Ref
		size uint64
	}
	window := make([]liveAlloc, 0, benchWindow)

	var allocs, frees, failed int64

	start := time.Now()
	for i := 0; i < benchRounds; i++ {
		sz := benchSizes[i%len(benchSizes)]
		if ref, _, err := kh.Allocate(sz, 0); err == nil {
			allocs++
			window = append(window, liveAlloc{ref: ref, size: sz})
		} else {
			failed++
		}
		if len(window) >= benchWindow {
			oldest := window[0]
			window = window[1:]
			if err := kh.Deallocate(oldest.ref, oldest.size, 0); err != nil {
				return fmt.Errorf("free during benchmark: %w", err)
			}
			frees++
		}
	}
	for _, l := range window {
		if err := kh.Deallocate(l.ref, l.size, 0); err != nil {
			return fmt.Errorf("free during drain: %w", err)
		}
		frees++
	}
	elapsed := time.Since(start)

	if err := kh.Validate(); err != nil {
		return fmt.Errorf("heap inconsistent after benchmark: %w", err)
	}

	st := kh.Stats()
	ops := allocs + frees
	var nsPerOp int64
	if ops > 0 {
		nsPerOp = elapsed.Nanoseconds() / ops
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"region":        size,
			"rounds":        benchRounds,
			"allocs":        allocs,
			"frees":         frees,
			"failed":        failed,
			"elapsed_ns":    elapsed.Nanoseconds(),
			"ns_per_op":     nsPerOp,
			"splits":        st.Splits,
			"coalesce_fwd":  st.CoalesceForward,
			"coalesce_back": st.CoalesceBackward,
			"free_bytes":    kh.FreeBytes(),
			"free_blocks":   kh.FreeBlocks(),
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\nHeap Benchmark:\n")
	printInfo("  Region: %s\n", formatBytes(int64(size)))
	printInfo("  Rounds: %s\n", formatNumber(int64(benchRounds)))
	printInfo("  Operations: %s (%s allocs, %s frees, %s failed)\n",
		formatNumber(ops), formatNumber(allocs), formatNumber(frees), formatNumber(failed))
	printInfo("  Elapsed: %v\n", elapsed)
	printInfo("  Per op: %d ns\n", nsPerOp)

	printInfo("\nFinal state:\n")
	printInfo("  Free: %s bytes in %d blocks\n", formatNumber(int64(kh.FreeBytes())), kh.FreeBlocks())
	printInfo("  Splits: %s, coalesced: %s forward, %s backward\n",
		formatNumber(int64(st.Splits)),
		formatNumber(int64(st.CoalesceForward)),
		formatNumber(int64(st.CoalesceBackward)))
	printInfo("\n✓ heap consistent\n")

	return nil
}
