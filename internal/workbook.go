package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is Excel's limit on sheet name length
const maxSheetName = 31

// WriteWorkbook saves reports to an xlsx file, one sheet per report: the title
// in A1, the header on row 3, then the rows and the footer
func WriteWorkbook(path string, reports ...Report) error {
	if len(reports) == 0 {
		return fmt.Errorf("writing workbook %s: no reports", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return fmt.Errorf("creating share style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	used := make(map[string]bool)
	for i, rep := range reports {
		sheet := uniqueSheetName(rep.Title, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("naming sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}

		if err := writeReportSheet(f, sheet, rep, bold, percent); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeReportSheet(f *excelize.File, sheet string, rep Report, bold, percent int) error {
	if err := f.SetCellValue(sheet, "A1", rep.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if rep.Unit != "" {
		if err := f.SetCellValue(sheet, "A2", "Unit: "+rep.Unit); err != nil {
			return err
		}
	}

	header := []any{rep.Label}
	for _, c := range rep.Columns {
		header = append(header, c.Name)
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(header), 3)
	if err := f.SetCellStyle(sheet, "A3", lastCol, bold); err != nil {
		return err
	}

	rows := rep.Rows
	if rep.Footer != nil {
		rows = append(append([]ReportRow{}, rows...), *rep.Footer)
	}
	for i, r := range rows {
		rowNum := 4 + i
		cells := []any{r.Label}
		for _, v := range r.Values {
			cells = append(cells, v)
		}
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return err
		}
		for j, c := range rep.Columns {
			if c.Kind != KindShare {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, rowNum)
			if err := f.SetCellStyle(sheet, cell, cell, percent); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(sheet, "A", "A", 28)
}

// uniqueSheetName turns a title into a valid, unused sheet name
func uniqueSheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Report"
	}
	if len(name) > maxSheetName {
		name = strings.TrimSpace(name[:maxSheetName])
	}

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := name
		if len(base)+len(suffix) > maxSheetName {
			base = strings.TrimSpace(base[:maxSheetName-len(suffix)])
		}
		candidate = base + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
