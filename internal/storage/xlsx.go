package storage

import (
	"go-career-scraper/internal/models"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(path string, records []models.JobRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := toCells(models.Columns)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := toCells(r.Row())
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func readXLSX(path string) ([]models.JobRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// fromRows drops the header row.
func fromRows(rows [][]string) []models.JobRecord {
	if len(rows) <= 1 {
		return nil
	}
	records := make([]models.JobRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, models.FromRow(row))
	}
	return records
}
