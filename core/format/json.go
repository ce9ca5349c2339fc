package format

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON formats rows as an array of objects keyed by header. Undefined floats
// (NaN and infinities) become null.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) records(header core.Header, rows []core.Row) []map[string]any {
	data := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		record := make(map[string]any, len(row))
		for i, val := range row {
			var h string
			if i < len(header) {
				h = header[i]
			} else {
				h = fmt.Sprintf("<unknown-field-%d>", i)
			}
			if f, ok := val.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				val = nil
			}
			record[h] = val
		}
		data = append(data, record)
	}

	return data
}

func (jf *JSON) Format(header core.Header, rows []core.Row) ([]byte, error) {
	out, err := json.MarshalIndent(jf.records(header, rows), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
