// Package jsontime provides a JSON date type accepting both bare
// "2006-01-02" dates and full RFC 3339 timestamps on input.
package jsontime

import (
	"bytes"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Time wraps time.Time with lenient JSON decoding
type Time struct {
	time.Time
}

// UnmarshalJSON accepts "2006-01-02" or RFC 3339 strings
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON emits RFC 3339
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// Ptr returns the wrapped time as a *time.Time, nil when unset
func (t *Time) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	tt := t.Time
	return &tt
}
