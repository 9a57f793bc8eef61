package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseSize converts a human byte size like "4096", "512K" or "2M" into
// bytes. K, M and G are binary multiples; an optional B or iB tail is
// accepted, so "64KiB" and "64KB" both mean 64*1024.
func parseSize(s string) (uint64, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	u = strings.TrimSuffix(u, "IB")
	u = strings.TrimSuffix(u, "B")

	mult := uint64(1)
	switch {
	case strings.HasSuffix(u, "K"):
		mult = 1 << 10
		u = u[:len(u)-1]
	case strings.HasSuffix(u, "M"):
		mult = 1 << 20
		u = u[:len(u)-1]
	case strings.HasSuffix(u, "G"):
		mult = 1 << 30
		u = u[:len(u)-1]
	}

	n, err := strconv.ParseUint(u, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("size must be positive")
	}
	if n > math.MaxUint64/mult {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return n * mult, nil
}
