package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "1", "3", "5", "15", "7")
	require.NoError(t, err)
	assert.Equal(t, "1\nfizz\nbuzz\nfizzbuzz\n7\n", out)
}

func TestClassifyCommand_Negative(t *testing.T) {
	out, err := run(t, "classify", "--", "-15", "-4", "0")
	require.NoError(t, err)
	assert.Equal(t, "fizzbuzz\n-4\nfizzbuzz\n", out)
}

func TestClassifyCommand_InvalidInput(t *testing.T) {
	out, err := run(t, "classify", "3", "three")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fizzbuzz.ErrInvalidInput))
	assert.Empty(t, out, "nothing should be printed when any input is invalid")
}

func TestClassifyCommand_NoArgs(t *testing.T) {
	_, err := run(t, "classify")
	assert.Error(t, err)
}

func TestClassifyCommand_JSON(t *testing.T) {
	out, err := run(t, "classify", "--json", "9")
	require.NoError(t, err)

	var rec classifier.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 9, rec.Input)
	assert.Equal(t, fizzbuzz.KindFizz, rec.Kind)
	assert.Equal(t, "divisible by 3", rec.Reason)
	assert.NotEmpty(t, rec.RequestID)
}

func TestRangeCommand(t *testing.T) {
	out, err := run(t, "range", "1", "15")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, []string{"1", "2", "fizz", "4", "buzz"}, lines[:5])
	assert.Equal(t, "fizzbuzz", lines[14])
}

func TestRangeCommand_JSON(t *testing.T) {
	out, err := run(t, "range", "--json", "1", "5")
	require.NoError(t, err)

	var raw struct {
		Results json.RawMessage    `json:"results"`
		Summary classifier.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.JSONEq(t, `[1,2,"fizz",4,"buzz"]`, string(raw.Results))
	assert.Equal(t, 5, raw.Summary.Total)
}

func TestRangeCommand_Errors(t *testing.T) {
	_, err := run(t, "range", "10", "1")
	assert.ErrorIs(t, err, fizzbuzz.ErrInvalidRange)

	_, err = run(t, "range", "1", "100000")
	assert.ErrorIs(t, err, fizzbuzz.ErrRangeTooLarge)

	_, err = run(t, "range", "1")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fizzbuzz version "))
}
