package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every input validation error
var ErrInvalidInput = errors.New("invalid input")

func location(field string, row int) string {
	if row > 0 {
		return fmt.Sprintf("%s (row %d)", field, row)
	}
	return field
}

// InputFormatError reports a value that cannot be parsed in its expected format.
// Row is 1-based; zero means the field is not part of a table.
type InputFormatError struct {
	Field    string
	Row      int
	Value    string
	Expected string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("%s: invalid format %q, expected %s", location(e.Field, e.Row), e.Value, e.Expected)
}

func (e *InputFormatError) Is(target error) bool { return target == ErrInvalidInput }

// InputConflictError reports mutually exclusive fields that were both supplied
// or neither supplied.
type InputConflictError struct {
	Field string
	Other string
	Msg   string
}

func (e *InputConflictError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Field, e.Other, e.Msg)
}

func (e *InputConflictError) Is(target error) bool { return target == ErrInvalidInput }

// InputRangeError reports a well-formed value outside its allowed domain
type InputRangeError struct {
	Field string
	Row   int
	Value string
	Msg   string
}

func (e *InputRangeError) Error() string {
	return fmt.Sprintf("%s: %s (got %s)", location(e.Field, e.Row), e.Msg, e.Value)
}

func (e *InputRangeError) Is(target error) bool { return target == ErrInvalidInput }

// ValidationErrors collects every problem found in one input document
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error { return v }

// Issue is a flattened validation problem for API responses
type Issue struct {
	Kind    string `json:"kind"`
	Field   string `json:"field"`
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// Issues flattens err into a list of field-level problems. Errors that are
// not input errors are skipped.
func Issues(err error) []Issue {
	var out []Issue
	var walk func(error)
	walk = func(e error) {
		switch v := e.(type) {
		case *InputFormatError:
			out = append(out, Issue{Kind: "format", Field: v.Field, Row: v.Row, Message: v.Error()})
		case *InputConflictError:
			out = append(out, Issue{Kind: "conflict", Field: v.Field, Message: v.Error()})
		case *InputRangeError:
			out = append(out, Issue{Kind: "range", Field: v.Field, Row: v.Row, Message: v.Error()})
		case interface{ Unwrap() []error }:
			for _, inner := range v.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(v.Unwrap())
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}

// collector accumulates validation errors with a field prefix
type collector struct {
	prefix string
	errs   ValidationErrors
}

func (c *collector) field(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + "." + name
}

func (c *collector) rangeErr(field string, row int, value any, msg string) {
	c.errs = append(c.errs, &InputRangeError{Field: c.field(field), Row: row, Value: fmt.Sprint(value), Msg: msg})
}

func (c *collector) conflict(field, other, msg string) {
	c.errs = append(c.errs, &InputConflictError{Field: c.field(field), Other: c.field(other), Msg: msg})
}

func (c *collector) add(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
