// Package fizzbuzz classifies integers by divisibility by 3 and 5.
//
// Classify is total over int: zero is divisible by everything and
// classifies as fizzbuzz, negative numbers follow the same modulo rule.
// Input validation (non-integer text, range bounds) happens in ParseInput
// and Series, never in Classify itself.
package fizzbuzz

import (
	"errors"
	"fmt"
)

// MaxSeriesLen caps how many values a single Series call may produce
const MaxSeriesLen = 10000

var (
	// ErrInvalidInput is returned for input that is not a base-10 integer
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRange is returned when a range starts after it ends
	ErrInvalidRange = errors.New("invalid range")
	// ErrRangeTooLarge is returned when a range exceeds the length limit
	ErrRangeTooLarge = errors.New("range too large")
)

// Classify maps n to fizzbuzz, fizz, buzz or n itself
func Classify(n int) Result {
	switch {
	case n%15 == 0:
		return Result{Kind: KindFizzBuzz, N: n}
	case n%3 == 0:
		return Result{Kind: KindFizz, N: n}
	case n%5 == 0:
		return Result{Kind: KindBuzz, N: n}
	default:
		return Result{Kind: KindNumber, N: n}
	}
}

// Series classifies every integer in [from, to] in ascending order
func Series(from, to int) ([]Result, error) {
	return SeriesLimit(from, to, MaxSeriesLen)
}

// SeriesLimit is Series with a caller supplied length limit
func SeriesLimit(from, to, limit int) ([]Result, error) {
	n, err := RangeLen(from, to, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, Classify(from+i))
	}
	return results, nil
}

// RangeLen validates [from, to] against limit and returns its length
func RangeLen(from, to, limit int) (int, error) {
	if from > to {
		return 0, fmt.Errorf("%w: from %d is greater than to %d", ErrInvalidRange, from, to)
	}
	// Compare as uint64 so spans near the int limits do not overflow
	span := uint64(to) - uint64(from)
	if limit < 1 || span >= uint64(limit) {
		return 0, fmt.Errorf("%w: [%d, %d] holds more than %d values", ErrRangeTooLarge, from, to, limit)
	}
	return int(span) + 1, nil
}
