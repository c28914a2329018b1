package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "Jan 2, 2006"

// ParseTime accepts RFC3339 and falls back to lenient parsing for records
// written by other tools.
func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("book: parse time %q: %w", v, err)
	}
	return t, nil
}

// Timestamp serialises a time as an RFC3339 string, empty when zero.
type Timestamp struct {
	time.Time
}

// Stamp wraps t.
func Stamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDate renders t as a short en-US date, e.g. "Mar 3, 2025".
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}
