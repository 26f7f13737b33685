// file: internals/helpers/dbtime/date.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day stored in a DATE column and rendered as "YYYY-MM-DD".
type Date struct{ time.Time }

// DateOf drops the clock part of t (in t's own location).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" or a full RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	var d Date
	return d, d.parse(s)
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Equal(o Date) bool { return d.String() == o.String() }

func (d Date) Ptr() *Date { return &d }

func (d *Date) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date: expected YYYY-MM-DD, got %q", s)
	}
	*d = DateOf(t)
	return nil
}

// Scan accepts time.Time (postgres, sqlite date columns) or text.
func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = DateOf(x)
		return nil
	case []byte:
		return d.parseStored(string(x))
	case string:
		return d.parseStored(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("date: unsupported Scan type %T", v)
	}
}

func (d *Date) parseStored(s string) error {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return d.parse(s)
}

// Value sends "YYYY-MM-DD" so both postgres DATE and sqlite text compare by day.
func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (Date) GormDataType() string { return "date" }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.parse(s)
}
