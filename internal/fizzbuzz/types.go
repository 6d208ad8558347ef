package fizzbuzz

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags which branch of the classifier produced a result
type Kind int

const (
	KindNumber Kind = iota
	KindFizz
	KindBuzz
	KindFizzBuzz
)

// Tag values emitted for the non-numeric kinds
const (
	TagFizz     = "fizz"
	TagBuzz     = "buzz"
	TagFizzBuzz = "fizzbuzz"
)

// String returns the lowercase kind name
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFizz:
		return TagFizz
	case KindBuzz:
		return TagBuzz
	case KindFizzBuzz:
		return TagFizzBuzz
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText encodes the kind by name so it reads well in logs and maps
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	return []Kind{KindNumber, KindFizz, KindBuzz, KindFizzBuzz}
}

// ParseKind maps a kind name back to its Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNumber, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, s)
}

// Result is the tagged output of Classify: either the input number
// itself or one of the fizz/buzz/fizzbuzz tags
type Result struct {
	Kind Kind
	N    int // The classified input, set for every kind
}

// IsNumber reports whether the result carries the input unchanged
func (r Result) IsNumber() bool {
	return r.Kind == KindNumber
}

// Value returns the polymorphic output: int for numbers, string for tags
func (r Result) Value() any {
	if r.IsNumber() {
		return r.N
	}
	return r.Kind.String()
}

// String renders the result the way it is printed one per line
func (r Result) String() string {
	if r.IsNumber() {
		return strconv.Itoa(r.N)
	}
	return r.Kind.String()
}

// MarshalJSON encodes numbers as JSON numbers and tags as JSON strings
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// UnmarshalJSON accepts either a JSON number or one of the tag strings.
// The input of a decoded tag is not recoverable and is left at zero.
func (r *Result) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Result{Kind: KindNumber, N: n}
		return nil
	}

	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("%w: result must be a number or a tag", ErrInvalidInput)
	}
	kind, err := ParseKind(tag)
	if err != nil {
		return err
	}
	if kind == KindNumber {
		return fmt.Errorf("%w: %q is not a tag", ErrInvalidInput, tag)
	}
	*r = Result{Kind: kind}
	return nil
}
