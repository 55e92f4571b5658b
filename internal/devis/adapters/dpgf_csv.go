package adapters

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSVDPGFDecoder decodes a comma-separated bill of quantities into raw
// string rows keyed by header name. The spreadsheet-decoding library
// named by spec.md is an external collaborator out of scope for the
// core; no such library exists in the example pack either, so this
// stand-in is stdlib-only on encoding/csv, matching the header-row
// DPGFColumnMapping contract the use case already expects.
type CSVDPGFDecoder struct{}

// NewCSVDPGFDecoder builds a CSVDPGFDecoder.
func NewCSVDPGFDecoder() *CSVDPGFDecoder { return &CSVDPGFDecoder{} }

// Decode parses payload as CSV, using its first row as headers and
// mapping logical column names (per the caller-supplied mapping) onto
// their source header. The mapping value is the source header name; the
// returned rows are keyed by the mapping's logical name.
func (CSVDPGFDecoder) Decode(ctx context.Context, payload []byte, mapping map[string]string) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lire l'en-tete DPGF: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		row := make(map[string]string, len(mapping))
		for logical, source := range mapping {
			if idx, ok := colIndex[source]; ok && idx < len(record) {
				row[logical] = record[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
