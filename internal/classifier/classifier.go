package classifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
)

// Classification is a single classifier decision with request metadata
type Classification struct {
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
	Input     int             `json:"input"`
	Kind      fizzbuzz.Kind   `json:"kind"`
	Value     fizzbuzz.Result `json:"value"` // Number or tag, as emitted by fizzbuzz.Classify
	Reason    string          `json:"reason"`
}

// Summary counts results per kind
type Summary struct {
	Numbers  int `json:"numbers"`
	Fizz     int `json:"fizz"`
	Buzz     int `json:"buzz"`
	FizzBuzz int `json:"fizzbuzz"`
	Total    int `json:"total"`
}

// Add counts one result
func (s *Summary) Add(k fizzbuzz.Kind) {
	switch k {
	case fizzbuzz.KindFizz:
		s.Fizz++
	case fizzbuzz.KindBuzz:
		s.Buzz++
	case fizzbuzz.KindFizzBuzz:
		s.FizzBuzz++
	default:
		s.Numbers++
	}
	s.Total++
}

// Batch is the classification of a closed range under one request id
type Batch struct {
	RequestID string            `json:"request_id"`
	Timestamp time.Time         `json:"timestamp"`
	From      int               `json:"from"`
	To        int               `json:"to"`
	Results   []fizzbuzz.Result `json:"results"`
	Summary   Summary           `json:"summary"`
}

// Classifier wraps fizzbuzz.Classify with request metadata
type Classifier struct {
	maxSeriesLen int // Upper bound on values per batch
}

// Config holds classifier configuration
type Config struct {
	// MaxSeriesLen limits how many values ClassifyRange may produce.
	// Values outside 1..fizzbuzz.MaxSeriesLen fall back to the package limit.
	MaxSeriesLen int
}

// DefaultConfig returns default classifier configuration
func DefaultConfig() Config {
	return Config{
		MaxSeriesLen: fizzbuzz.MaxSeriesLen,
	}
}

// New creates a new classifier
func New(cfg Config) *Classifier {
	limit := cfg.MaxSeriesLen
	if limit < 1 || limit > fizzbuzz.MaxSeriesLen {
		limit = fizzbuzz.MaxSeriesLen
	}
	return &Classifier{
		maxSeriesLen: limit,
	}
}

// MaxSeriesLen returns the effective batch length limit
func (c *Classifier) MaxSeriesLen() int {
	return c.maxSeriesLen
}

// Classify classifies n and returns the decision with an explanation
func (c *Classifier) Classify(n int) Classification {
	result := fizzbuzz.Classify(n)

	return Classification{
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Input:     n,
		Kind:      result.Kind,
		Value:     result,
		Reason:    Reason(result.Kind),
	}
}

// ClassifyRange classifies every integer in [from, to]
func (c *Classifier) ClassifyRange(from, to int) (Batch, error) {
	results, err := fizzbuzz.SeriesLimit(from, to, c.maxSeriesLen)
	if err != nil {
		return Batch{}, err
	}

	var summary Summary
	for _, r := range results {
		summary.Add(r.Kind)
	}

	return Batch{
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC(),
		From:      from,
		To:        to,
		Results:   results,
		Summary:   summary,
	}, nil
}

// Reason explains why a number was given kind k
func Reason(k fizzbuzz.Kind) string {
	switch k {
	case fizzbuzz.KindFizzBuzz:
		return "divisible by 3 and 5"
	case fizzbuzz.KindFizz:
		return "divisible by 3"
	case fizzbuzz.KindBuzz:
		return "divisible by 5"
	default:
		return "not divisible by 3 or 5"
	}
}
