package models

import (
	"encoding/json"
	"fmt"
)

// scanJSON decodes a JSONB column value into dest.
func scanJSON(src interface{}, dest interface{}) error {
	switch raw := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
