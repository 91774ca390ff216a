package htmltable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads comma-separated records. The first record is the header.
func ReadCSV(r io.Reader) (*Frame, error) {
	return readDelimited(r, ',')
}

// ReadTSV reads tab-separated records. The first record is the header.
func ReadTSV(r io.Reader) (*Frame, error) {
	return readDelimited(r, '\t')
}

func readDelimited(r io.Reader, comma rune) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewFrame(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	for i, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: record %d has %d fields, header has %d", ErrInvalidDataset, i+1, len(rec), len(header))
		}
	}
	return fromRecords(header, records)
}
