// Command bench_report turns `go test -bench` output into a markdown
// report. Kernel-facade benchmarks are paired with their raw-engine
// counterparts so the interrupt-masking overhead shows up as its own
// column.
//
// Usage:
//
//	go test -bench . -benchmem ./... | go run scripts/bench_report.go
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchResult represents one parsed benchmark line.
type BenchResult struct {
	Name        string
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// FacadeOverhead pairs an engine benchmark with its KernelHeap rendition.
type FacadeOverhead struct {
	Operation string
	EngineNs  float64
	FacadeNs  float64
	Ratio     float64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	overheads := pairFacadeRuns(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Paired %d engine/facade runs\n", len(overheads))
	}

	report := generateMarkdownReport(results, overheads)

	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchResult {
	var results []BenchResult

	// BenchmarkAllocFreePair-8    10000    124.5 ns/op    0 B/op    0 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Tolerate `go test -json` stream lines
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64
		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		results = append(results, BenchResult{
			Name:        matches[1],
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// operationName strips the Benchmark prefix and the -GOMAXPROCS suffix.
func operationName(name string) string {
	op := strings.TrimPrefix(name, "Benchmark")
	op = strings.TrimPrefix(op, "_")
	if idx := strings.LastIndex(op, "-"); idx > 0 {
		if _, err := strconv.Atoi(op[idx+1:]); err == nil {
			op = op[:idx]
		}
	}
	return op
}

// pairFacadeRuns matches BenchmarkKernelHeapXxx against BenchmarkXxx.
// Unpaired benchmarks are simply not compared.
func pairFacadeRuns(results []BenchResult) []FacadeOverhead {
	engine := make(map[string]BenchResult)
	facade := make(map[string]BenchResult)

	for _, r := range results {
		op := operationName(r.Name)
		if rest, ok := strings.CutPrefix(op, "KernelHeap"); ok {
			facade[rest] = r
		} else {
			engine[op] = r
		}
	}

	var overheads []FacadeOverhead
	for op, e := range engine {
		f, ok := facade[op]
		if !ok || e.NsPerOp == 0 {
			continue
		}
		overheads = append(overheads, FacadeOverhead{
			Operation: op,
			EngineNs:  e.NsPerOp,
			FacadeNs:  f.NsPerOp,
			Ratio:     f.NsPerOp / e.NsPerOp,
		})
	}

	sort.Slice(overheads, func(i, j int) bool {
		return overheads[i].Operation < overheads[j].Operation
	})

	return overheads
}

func generateMarkdownReport(results []BenchResult, overheads []FacadeOverhead) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(results)))
	sb.WriteString(fmt.Sprintf("- **Engine/facade pairs**: %d\n", len(overheads)))
	if len(overheads) > 0 {
		total := 0.0
		for _, o := range overheads {
			total += o.Ratio
		}
		sb.WriteString(fmt.Sprintf("- **Average facade overhead**: %.2fx\n", total/float64(len(overheads))))
	}
	sb.WriteString("\n")

	sb.WriteString("## All Results\n\n")
	sb.WriteString("| Benchmark | Iterations | ns/op | B/op | allocs/op |\n")
	sb.WriteString("|-----------|------------|-------|------|-----------|\n")

	sorted := make([]BenchResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, r := range sorted {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %d |\n",
			operationName(r.Name),
			r.Iterations,
			formatNumber(r.NsPerOp),
			formatBytes(r.BytesPerOp),
			r.AllocsPerOp,
		))
	}
	sb.WriteString("\n")

	if len(overheads) > 0 {
		sb.WriteString("## Interrupt-Masking Overhead\n\n")
		sb.WriteString("| Operation | Engine (ns/op) | KernelHeap (ns/op) | Overhead |\n")
		sb.WriteString("|-----------|----------------|--------------------|----------|\n")
		for _, o := range overheads {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2fx |\n",
				o.Operation,
				formatNumber(o.EngineNs),
				formatNumber(o.FacadeNs),
				o.Ratio,
			))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Performance by Category\n\n")
	categories := categorizeResults(sorted)
	for _, cat := range []string{"Allocator", "Kernel Facade", "Filesystem", "Image"} {
		comps := categories[cat]
		if len(comps) == 0 {
			continue
		}
		total := 0.0
		for _, r := range comps {
			total += r.NsPerOp
		}
		sb.WriteString(fmt.Sprintf("- **%s**: %d benchmarks, %s ns/op average\n",
			cat, len(comps), formatNumber(total/float64(len(comps)))))
	}
	sb.WriteString("\n")

	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Overhead = facade ns / engine ns**: cost of the critical-section bracketing\n")
	sb.WriteString("- Run with `-benchmem` to populate the B/op and allocs/op columns\n")

	return sb.String()
}

func categorizeResults(results []BenchResult) map[string][]BenchResult {
	categories := make(map[string][]BenchResult)

	for _, r := range results {
		op := strings.ToLower(operationName(r.Name))

		switch {
		case strings.HasPrefix(op, "kernelheap"):
			categories["Kernel Facade"] = append(categories["Kernel Facade"], r)
		case strings.Contains(op, "alloc") || strings.Contains(op, "frag"):
			categories["Allocator"] = append(categories["Allocator"], r)
		case strings.Contains(op, "tracker") || strings.Contains(op, "image") ||
			strings.Contains(op, "flush"):
			categories["Image"] = append(categories["Image"], r)
		default:
			categories["Filesystem"] = append(categories["Filesystem"], r)
		}
	}

	return categories
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
