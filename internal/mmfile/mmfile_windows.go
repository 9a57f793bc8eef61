//go:build windows

package mmfile

import (
	"os"
)

// Map maps the file at path into memory and returns its contents.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// MapRW reads the entire file into a buffer; cleanup writes the buffer back.
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
