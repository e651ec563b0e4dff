// export/excel.go
package export

import (
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet WriteExcel fills.
const SheetName = "Amounts"

const maxColWidth = 80

// WriteExcel writes results as an .xlsx workbook with a styled, frozen
// header row and columns sized to their content.
func WriteExcel(w io.Writer, results []Result) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	widths := make([]int, len(Columns))
	track := func(col int, s string) {
		if n := utf8.RuneCountInString(s); n > widths[col] {
			widths[col] = n
		}
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
		track(i, h)
	}

	for r, res := range results {
		for i, v := range record(res) {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
			track(i, v)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", endCell, style); err != nil {
		return err
	}

	for i, n := range widths {
		width := float64(n) * 1.1
		if width < 10 {
			width = 10
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}
