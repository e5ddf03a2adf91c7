package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported sales workbook.
const (
	SheetSales     = "Sales"
	SheetTrend     = "Trend"
	SheetByProduct = "By Product"
)

// ExportSalesReport writes the sales report for [start, end] to w as an XLSX
// workbook with the rows, the daily trend and the per-product totals.
func (s *ReportService) ExportSalesReport(start, end string, w io.Writer) error {
	rows, err := s.SalesReport(start, end)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return fmt.Errorf("failed to name sales sheet: %w", err)
	}
	if err := writeSheet(f, SheetSales, []interface{}{"Product", "Quantity Sold", "Date"}, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].ProductName, rows[i].QuantitySold, rows[i].Date}
	}); err != nil {
		return err
	}

	trend := SalesTrend(rows)
	if _, err := f.NewSheet(SheetTrend); err != nil {
		return fmt.Errorf("failed to create trend sheet: %w", err)
	}
	if err := writeSheet(f, SheetTrend, []interface{}{"Date", "Quantity Sold"}, len(trend), func(i int) []interface{} {
		return []interface{}{trend[i].Date, trend[i].TotalQuantity}
	}); err != nil {
		return err
	}

	byProduct := SalesByProduct(rows)
	if _, err := f.NewSheet(SheetByProduct); err != nil {
		return fmt.Errorf("failed to create product sheet: %w", err)
	}
	if err := writeSheet(f, SheetByProduct, []interface{}{"Product", "Quantity Sold"}, len(byProduct), func(i int) []interface{} {
		return []interface{}{byProduct[i].ProductName, byProduct[i].TotalQuantity}
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, n int, row func(i int) []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
