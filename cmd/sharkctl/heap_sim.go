package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lemonshark/sharkkit/heap"
	"github.com/lemonshark/sharkkit/heap/irq"
	"github.com/lemonshark/sharkkit/internal/align"
	"github.com/spf13/cobra"
)

var (
	simScript string
	simSize   string
)

func newHeapSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run an op script against a fresh heap",
		Long: `The sim command creates a fresh heap and feeds it a script of
allocator operations, printing the result of each. Blank lines and lines
starting with # are skipped.

Ops:
  alloc SIZE [ALIGN]   allocate; each success is numbered for free
  free INDEX           deallocate the INDEXth successful allocation
  dump                 print the free-list state
  stats                print the allocator counters
  validate             sweep the heap invariants, fail the run on damage

Example:
  echo "alloc 100" | sharkctl heap sim
  sharkctl heap sim --script ops.txt --size 4K`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeapSim()
		},
	}
	cmd.Flags().StringVar(&simScript, "script", "-", "Script file, or - for stdin")
	cmd.Flags().StringVar(&simSize, "size", "64K", "Heap region size (accepts K/M/G suffixes)")
	return cmd
}

// simAlloc remembers the triple of a successful allocation so free can
// hand Deallocate exactly what Allocate was given.
type simAlloc struct {
	ref   heap.Ref
	size  uint64
	align uint64
	freed bool
}

func runHeapSim() error {
	requested, err := parseSize(simSize)
	if err != nil {
		return fmt.Errorf("failed to parse size: %w", err)
	}
	size := align.Up(requested, heap.HeaderSize)
	if size != requested {
		printVerbose("Rounding region up from %d to %d bytes\n", requested, size)
	}

	var r io.Reader = os.Stdin
	if simScript != "-" {
		f, err := os.Open(simScript)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	src := irq.NewSim()
	kh := heap.NewKernelHeap(src)
	if err := kh.Init(make([]byte, size)); err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	var allocs []simAlloc

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "alloc":
			if len(fields) < 2 || len(fields) > 3 {
				return fmt.Errorf("line %d: usage: alloc SIZE [ALIGN]", line)
			}
			sz, err := parseSize(fields[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			var al uint64
			if len(fields) == 3 {
				al, err = parseSize(fields[2])
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
			}
			ref, _, err := kh.Allocate(sz, al)
			if err != nil {
				printInfo("alloc %d align %d -> %v\n", sz, al, err)
				continue
			}
			idx := len(allocs)
			allocs = append(allocs, simAlloc{ref: ref, size: sz, align: al})
			printInfo("[%d] alloc %d align %d -> off=%#x\n", idx, sz, al, ref)

		case "free":
			if len(fields) != 2 {
				return fmt.Errorf("line %d: usage: free INDEX", line)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil || idx < 0 || idx >= len(allocs) {
				return fmt.Errorf("line %d: bad free index %q", line, fields[1])
			}
			a := &allocs[idx]
			if a.freed {
				return fmt.Errorf("line %d: allocation %d already freed", line, idx)
			}
			if err := kh.Deallocate(a.ref, a.size, a.align); err != nil {
				return fmt.Errorf("line %d: free [%d]: %w", line, idx, err)
			}
			a.freed = true
			printInfo("free [%d] -> off=%#x size=%d\n", idx, a.ref, a.size)

		case "dump":
			if !quiet {
				kh.DumpState(os.Stdout)
			}

		case "stats":
			st := kh.Stats()
			printInfo("allocs=%d frees=%d failed=%d live=%d bytes in %d blocks\n",
				st.AllocCalls, st.FreeCalls, st.FailedAllocs, st.LiveBytes, st.LiveBlocks)
			printInfo("free=%d bytes in %d blocks, largest %d\n",
				kh.FreeBytes(), kh.FreeBlocks(), kh.LargestFree())
			printInfo("splits=%d coalesced fwd=%d back=%d\n",
				st.Splits, st.CoalesceForward, st.CoalesceBackward)

		case "validate":
			if err := kh.Validate(); err != nil {
				return fmt.Errorf("heap validation failed: %w", err)
			}
			printInfo("✓ heap consistent\n")

		default:
			return fmt.Errorf("line %d: unknown op %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	st := kh.Stats()

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"region":            size,
			"alloc_calls":       st.AllocCalls,
			"free_calls":        st.FreeCalls,
			"failed_allocs":     st.FailedAllocs,
			"live_bytes":        st.LiveBytes,
			"live_blocks":       st.LiveBlocks,
			"free_bytes":        kh.FreeBytes(),
			"free_blocks":       kh.FreeBlocks(),
			"largest_free":      kh.LargestFree(),
			"critical_sections": src.Disables,
			"balanced":          src.Balanced(),
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\nScript complete: %d allocs (%d failed), %d frees\n",
		st.AllocCalls, st.FailedAllocs, st.FreeCalls)
	printInfo("Free: %d bytes in %d blocks, largest %d\n",
		kh.FreeBytes(), kh.FreeBlocks(), kh.LargestFree())
	printInfo("Critical sections: %d entered, balanced=%t\n", src.Disables, src.Balanced())

	return nil
}
