package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of an Excel workbook. The EIA offers the same
// tables as xlsx downloads; the banner rows sit above the header just like the CSVs.
func LoadXLSX(path string, skipRows int) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: opening %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawTable{}, fmt.Errorf("%w: no sheets found in %s", ErrSourceUnavailable, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: reading sheet %s of %s: %v", ErrSourceUnavailable, sheets[0], path, err)
	}

	if skipRows < 0 {
		skipRows = 0
	}
	if len(rows) <= skipRows {
		return RawTable{}, fmt.Errorf("%w: %s ends within the first %d banner rows", ErrSourceUnavailable, path, skipRows)
	}

	return tableFromRecords(path, rows[skipRows:])
}
