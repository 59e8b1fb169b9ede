package report

import (
	"fmt"

	"inventory-backend/internal/apperr"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Report"
)

// Workbook lays one report out as a sheet: a header block with branch, date and
// notes, then one row per line.
func (s *Service) Workbook(v *View) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, apperr.Internal("", err)
	}

	local := v.DateSent.In(s.loc)
	header := [][]any{
		{"Branch", v.Branch.Name},
		{"Date", local.Format("2.1.2006 15:04")},
		{"Notes", v.Notes},
		{},
		{"Item", "Description", "Price", "To order"},
	}
	row := 1
	for _, values := range header {
		if len(values) > 0 {
			if err := f.SetSheetRow(sheetName, cell(1, row), &values); err != nil {
				_ = f.Close()
				return nil, apperr.Internal("", err)
			}
		}
		row++
	}

	for _, l := range v.StockReport {
		price := ""
		if l.Item.Price != nil {
			price = l.Item.Price.StringFixed(2)
		}
		name := l.Item.Name
		if name == "" {
			name = l.Item.ID
		}
		values := []any{name, l.Item.Description, price, l.CurrentStock}
		if err := f.SetSheetRow(sheetName, cell(1, row), &values); err != nil {
			_ = f.Close()
			return nil, apperr.Internal("", err)
		}
		row++
	}

	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", "B", 40)
	return f, nil
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("A%d", row)
	}
	return name
}
