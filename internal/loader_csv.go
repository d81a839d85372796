package internal

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads a delimited table as published by the EIA download pages:
// a few banner lines, a header row, then data rows. Banner lines are skipped
// as raw lines (some are blank), rows may be ragged (trailing commas) and
// descriptions are quoted.
func LoadCSV(path string, skipRows int) (RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: opening %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < skipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return RawTable{}, fmt.Errorf("%w: %s ends within the first %d banner lines", ErrSourceUnavailable, path, skipRows)
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: reading %s: %v", ErrSourceUnavailable, path, err)
		}
		records = append(records, rec)
	}

	return tableFromRecords(path, records)
}

// tableFromRecords splits records into header and rows; records[0] is the header
func tableFromRecords(source string, records [][]string) (RawTable, error) {
	if len(records) == 0 {
		return RawTable{}, fmt.Errorf("%w: %s has no header row", ErrSourceUnavailable, source)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		// Strip a UTF-8 byte order mark from the first cell
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return RawTable{
		Source: source,
		Header: header,
		Rows:   rectangular(header, records[1:]),
	}, nil
}
