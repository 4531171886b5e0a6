package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AttributeMap stores the free-form source attributes of a catalog variant as
// a JSONB column. Keys and values arrive exactly as the ingestion pipeline
// produced them; normalization happens at read time.
type AttributeMap map[string]string

func (m *AttributeMap) Scan(src any) error {
	if src == nil {
		*m = AttributeMap{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("AttributeMap: unsupported Scan type %T", src)
	}

	if len(raw) == 0 {
		*m = AttributeMap{}
		return nil
	}

	out := map[string]string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("AttributeMap: decode: %w", err)
	}
	*m = out
	return nil
}

func (m AttributeMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, fmt.Errorf("AttributeMap: encode: %w", err)
	}
	return string(raw), nil
}
