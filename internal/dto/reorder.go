package dto

import (
	"bytes"
	"encoding/json"
)

// ReorderRequest accepts either {"orderedIds": [...]} or a bare JSON array.
type ReorderRequest struct {
	OrderedIDs []uint `json:"orderedIds"`
}

func (r *ReorderRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.OrderedIDs)
	}

	type plain ReorderRequest
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = ReorderRequest(p)
	return nil
}
