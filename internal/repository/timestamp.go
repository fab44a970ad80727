package repository

import (
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width UTC text so that string comparison in
// SQL matches chronological order.
const timestampLayout = "2006-01-02 15:04:05.000"

func formatTS(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

var parseLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
}

// sqlTime scans a timestamp column whether the driver hands back text or
// an already parsed time.
type sqlTime struct {
	time.Time
}

func (s *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		s.Time = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		s.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s *sqlTime) parse(v string) error {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", v)
}
