package report

import (
	"bytes"
	"encoding/json"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// DecodeRecords accepts a single record or an array of records
func DecodeRecords(data []byte) ([]planning.RecommendationRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, core.ErrEmptyInput
	}
	if data[0] == '[' {
		var records []planning.RecommendationRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, core.NewInvalidArgument("records", err.Error())
		}
		return records, nil
	}
	var rec planning.RecommendationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, core.NewInvalidArgument("record", err.Error())
	}
	return []planning.RecommendationRecord{rec}, nil
}
