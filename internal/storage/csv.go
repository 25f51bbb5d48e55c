package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"go-career-scraper/internal/models"
)

// EncodeCSV writes a header row followed by one row per record.
func EncodeCSV(w io.Writer, records []models.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCSV(path string, records []models.JobRecord) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, records); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func readCSV(path string) ([]models.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func writeJSON(path string, records []models.JobRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string) ([]models.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
