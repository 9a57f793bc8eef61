//go:build !unix && !windows

// Package mmfile provides platform-specific helpers for memory-mapping image files.
package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// MapRW reads the entire file into a buffer; cleanup writes the buffer back.
// Callers lose incremental durability on these platforms but keep the same
// mutate-then-close contract.
func MapRW(path string) ([]byte, *os.File, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, func() error { return nil }, err
	}
	cleanup := func() error {
		return os.WriteFile(path, data, 0o644)
	}
	return data, nil, cleanup, nil
}
