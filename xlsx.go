package htmltable

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a worksheet. The first row is the header; cells are typed
// the same way as CSV cells. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return NewFrame(nil)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrInvalidDataset, sheet, err)
	}
	if len(rows) == 0 {
		return NewFrame(nil)
	}
	header := rows[0]
	for i, rec := range rows[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: sheet %q row %d has %d cells, header has %d", ErrInvalidDataset, sheet, i+2, len(rec), len(header))
		}
	}
	return fromRecords(header, rows[1:])
}
