package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) records(header core.Header, rows []core.Row) [][]string {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		record := make([]string, 0, len(row))
		for _, cell := range row {
			record = append(record, formatCell(cell))
		}
		data = append(data, record)
	}

	return data
}

func (cf *CSV) Format(header core.Header, rows []core.Row) ([]byte, error) {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(cf.records(header, rows))
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
