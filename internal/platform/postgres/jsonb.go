package postgres

import (
	"encoding/json"
	"fmt"
)

// marshalJSONB serializes a slice-valued document column. Nil slices are
// stored as empty JSON arrays so reads never see SQL NULL or JSON null.
func marshalJSONB[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb column: %w", err)
	}
	return data, nil
}

// unmarshalJSONB deserializes a slice-valued document column, mapping
// empty input to an empty slice.
func unmarshalJSONB[T any](data []byte) ([]T, error) {
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jsonb column: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
