// Package catalog writes the crawl's page catalog to disk. The format is
// chosen from the output path's extension: .xlsx produces a spreadsheet,
// everything else CSV.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gipcrawl/pkg/models"
)

var header = []string{"name", "date", "category", "url"}

// Write saves the catalog to path, one row per page record after the header
// row.
func Write(path string, records []models.PageRecord) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, records)
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records []models.PageRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing catalog header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.Name, rec.Date, rec.Category, rec.URL}); err != nil {
			return fmt.Errorf("writing catalog row for %q: %w", rec.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing catalog to %q: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, records []models.PageRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("writing catalog header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{rec.Name, rec.Date, rec.Category, rec.URL}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing catalog row for %q: %w", rec.URL, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving catalog to %q: %w", path, err)
	}
	return nil
}
