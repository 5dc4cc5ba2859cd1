package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList persists a []string as a JSON array in a text column. Used for
// attribute option lists so the schema stays portable between postgres and
// the sqlite driver the tests run on.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner. Malformed stored payloads decode to nil
// instead of failing the whole row read.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string list source %T", value)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		*l = nil
		return nil
	}
	*l = out
	return nil
}

// Contains reports whether the list holds the given entry.
func (l StringList) Contains(entry string) bool {
	for _, candidate := range l {
		if candidate == entry {
			return true
		}
	}
	return false
}
