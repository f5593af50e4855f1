package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// MustJSON marshals v into a datatypes.JSON column value. Marshal failures on
// the payload structs in this package are programming errors, so a failure
// falls back to JSON null rather than propagating.
func MustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(b)
}

// DecodeJSON unmarshals a jsonb column into out; empty or null columns leave
// out at its zero value.
func DecodeJSON(raw datatypes.JSON, out any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}
