package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeLayout is fixed width so encoded timestamps order lexically.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Document is the field set of one stored record.
type Document map[string]any

func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Document) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*d = Document{}
		return nil
	default:
		return fmt.Errorf("store: cannot scan %T into Document", src)
	}
	out := Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("store: decode document: %w", err)
	}
	*d = out
	return nil
}

func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

func (d Document) Int(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func (d Document) Time(key string) (time.Time, bool) {
	s, ok := d.String(key)
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseTime(s)
	return t, err == nil
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

var ErrMissingField = errors.New("store: missing or mistyped field")
