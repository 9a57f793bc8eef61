package main

import (
	"os"
	"testing"
)

func TestCheckCommand(t *testing.T) {
	t.Run("clean image", func(t *testing.T) {
		resetFlags()
		path := seedTestImage(t)

		output, err := captureOutput(t, func() error {
			return runCheck([]string{path})
		})
		if err != nil {
			t.Fatalf("runCheck() error = %v", err)
		}
		assertContains(t, output, []string{"✓ No problems found"})
	})

	t.Run("clean json", func(t *testing.T) {
		resetFlags()
		jsonOut = true
		path := seedTestImage(t)

		output, err := captureOutput(t, func() error {
			return runCheck([]string{path})
		})
		if err != nil {
			t.Fatalf("runCheck() error = %v", err)
		}
		assertJSON(t, output)
		assertContains(t, output, []string{`"clean": true`, `"errors": 0`})
	})

	t.Run("corrupted image fails", func(t *testing.T) {
		resetFlags()
		path := seedTestImage(t)

		// Clear a reserved block's bitmap bit. Word 0 of the allocation
		// bitmap lives at byte 32 of block 0; bit 5 covers block 5, which
		// sits inside the reserved metadata area.
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read image: %v", err)
		}
		raw[32] &^= 1 << 5
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatalf("write image: %v", err)
		}

		output, err := captureOutput(t, func() error {
			return runCheck([]string{path})
		})
		if err == nil {
			t.Fatal("expected error for corrupted image")
		}
		assertContains(t, output, []string{
			"[ERROR] BITMAP block 5",
			"reserved block not marked used",
		})
	})
}
