package fizzbuzz

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInput parses a base-10 integer from user supplied text.
// Surrounding whitespace and a leading sign are accepted; floats,
// words and values outside int fail with ErrInvalidInput.
func ParseInput(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidInput)
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, trimmed)
	}
	return n, nil
}

// ParseRange parses the two bounds of a range
func ParseRange(from, to string) (int, int, error) {
	lo, err := ParseInput(from)
	if err != nil {
		return 0, 0, fmt.Errorf("from: %w", err)
	}
	hi, err := ParseInput(to)
	if err != nil {
		return 0, 0, fmt.Errorf("to: %w", err)
	}
	return lo, hi, nil
}
