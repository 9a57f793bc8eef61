package main

import (
	"fmt"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/lemonshark/sharkkit/ramfs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <image>",
		Short: "Check an image for structural problems",
		Long: `The check command sweeps a volume image for structural damage and
accounting drift: bitmap inconsistencies, cross-linked or leaked blocks,
dangling directory entries, and bad sizes.

The exit code is non-zero when any error-severity problem is found;
warnings and notes alone leave it zero.

Example:
  sharkctl check disk.img
  sharkctl check disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

func runCheck(args []string) error {
	imgPath := args[0]

	printVerbose("Checking image: %s\n", imgPath)

	problems, err := sharkfs.Check(imgPath)
	if err != nil {
		return fmt.Errorf("failed to check image: %w", err)
	}

	var errors, warnings int
	for _, p := range problems {
		switch p.Severity {
		case ramfs.SevError:
			errors++
		case ramfs.SevWarning:
			warnings++
		}
	}

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"image":    imgPath,
			"problems": problems,
			"errors":   errors,
			"warnings": warnings,
			"clean":    len(problems) == 0,
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if errors > 0 {
			return fmt.Errorf("%d error(s) found", errors)
		}
		return nil
	}

	// Text output
	printInfo("\nChecking %s...\n\n", imgPath)

	if len(problems) == 0 {
		printInfo("✓ No problems found\n")
		return nil
	}

	for _, p := range problems {
		printInfo("  %s\n", p)
	}

	printInfo("\n%d problem(s): %d error(s), %d warning(s)\n", len(problems), errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d error(s) found", errors)
	}
	return nil
}
