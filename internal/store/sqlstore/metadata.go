package sqlstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata maps a transaction's free-form metadata to a JSONB (postgres) or JSON (mysql) column.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Metadata) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("metadata: expected []byte, got %T", value)
	}

	if len(b) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(b, m)
}
