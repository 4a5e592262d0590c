package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const DateFormat = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04",
	DateFormat,
}

// Timestamp is a time.Time that accepts the handful of layouts the API emits,
// including naive datetimes, bare dates and null.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// String renders the date part only, or an empty string when unset.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// MarshalText is used by csvutil.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
