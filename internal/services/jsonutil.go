package services

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// EncodeInterests marshals an interests list for storage on the user
// row. Exposed for handlers that accept interests at registration.
func EncodeInterests(interests []string) datatypes.JSON {
	return encodeJSON(interests)
}

func encodeJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
