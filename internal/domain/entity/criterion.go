package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Criterion is one rateable item of a wellness domain. Seeded externally.
type Criterion struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain     string     `gorm:"type:varchar(255);not null;index" json:"domain"`
	Text       string     `gorm:"type:text;not null" json:"criterion"`
	Provenance Provenance `gorm:"type:jsonb" json:"provenance"`
}

func (Criterion) TableName() string {
	return "criteria"
}

// Provenance lists the data sources a criterion is derived from.
type Provenance []string

// Value returns json value, implement driver.Valuer interface
func (p Provenance) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Provenance, implements sql.Scanner interface
func (p *Provenance) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return p.UnmarshalJSON(bytes)
}

// UnmarshalJSON accepts a JSON array of strings, a JSON string holding such an
// array, or a comma separated string.
func (p *Provenance) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*p = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return err
		}
		*p = cleanSources(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		// Raw database text that is not JSON encoded.
		raw = trimmed
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			*p = cleanSources(list)
			return nil
		}
	}
	*p = cleanSources(strings.Split(raw, ","))
	return nil
}

func cleanSources(in []string) Provenance {
	out := make(Provenance, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
