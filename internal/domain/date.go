package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the canonical serialized form of a Date.
const DateLayout = "2006-01-02"

// DateFormats describes the accepted date layouts for error messages.
const DateFormats = "YYYY-MM-DD or MM/DD/YYYY"

var dateLayouts = []string{DateLayout, "01/02/2006", time.RFC3339}

// Date is a calendar date without a time component. It decodes from
// ISO (2006-01-02), US (01/02/2006) or RFC 3339 text.
type Date struct {
	time.Time
}

// NewDate creates a UTC date
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the accepted layouts
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q, expected %s", s, DateFormats)
}

// String returns the ISO form
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalYAML reads the raw scalar so YAML timestamps and quoted strings behave the same
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if err := d.UnmarshalText([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
