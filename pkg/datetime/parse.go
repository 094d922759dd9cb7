// Package datetime provides date and time utility functions.
package datetime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"gopkg.in/yaml.v3"
)

const (
	// DateLayout is the format expected in log and config files and is also
	// the output date format.
	DateLayout = constants.DateLayout

	hoursPerDay = 24
)

// Date is a calendar day in UTC. The zero value means "unset".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// MustParseDate parses a date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the date offset by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}

// DaysUntil returns the number of calendar days from d to other; negative
// when other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / hoursPerDay)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a DateLayout string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a DateLayout string; empty strings and null leave the
// date unset.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	return d.set(s)
}

// MarshalYAML encodes the date as a DateLayout string.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a DateLayout scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	return d.set(node.Value)
}

func (d *Date) set(s string) error {
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
