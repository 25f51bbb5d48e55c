package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	apperrors "go-career-scraper/internal/errors"
	"go-career-scraper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

func record(title, company, description string) models.JobRecord {
	r := models.NewJobRecord("https://acme.example/jobs/" + strings.ToLower(title))
	r.JobTitle = title
	r.CompanyName = company
	r.JobDescription = description
	return r
}

func TestDedup_KeepsFirst(t *testing.T) {
	records := []models.JobRecord{
		record("Engineer", "Acme", "first description"),
		record("Engineer", "Globex", "other company"),
		record("Engineer", "Acme", "second description"),
		record("Designer", "Acme", "design"),
	}

	unique := Dedup(records)
	require.Len(t, unique, 3)
	assert.Equal(t, "first description", unique[0].JobDescription)
	assert.Equal(t, "Globex", unique[1].CompanyName)
	assert.Equal(t, "Designer", unique[2].JobTitle)
}

func TestSave_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "jobs.xlsx")
	records := []models.JobRecord{
		record("Engineer", "Acme", "first description"),
		record("Engineer", "Acme", "second description"),
	}

	n, err := Save(records, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "Engineer", rows[1][1])
	assert.Equal(t, "first description", rows[1][5])

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []models.JobRecord{records[0]}, loaded)
}

func TestSave_CSVAndJSON(t *testing.T) {
	records := []models.JobRecord{
		record("Engineer", "Acme", "line one, with comma"),
		record("Designer", "Acme", `quoted "text"`),
	}

	for _, name := range []string{"jobs.csv", "jobs.JSON"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			n, err := Save(records, path, zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, records, loaded)
		})
	}
}

func TestEncodeCSV_HeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []models.JobRecord{record("Engineer", "Acme", "d")}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "company_name,job_title,work_location,job_location,experience,job_description,responsibilities,qualifications,apply_link", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Acme,Engineer,Not specified,"))
}

func TestSave_EmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	n, err := Save(nil, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Zero(t, n)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSave_Errors(t *testing.T) {
	records := []models.JobRecord{record("Engineer", "Acme", "d")}

	_, err := Save(records, filepath.Join(t.TempDir(), "jobs.txt"), zaptest.NewLogger(t))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidInput))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	_, err = Save(records, filepath.Join(blocker, "jobs.csv"), zaptest.NewLogger(t))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypePersistence))
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	sink := &FileSink{Path: path, Logger: zaptest.NewLogger(t)}

	n, err := sink.Store(context.Background(), []models.JobRecord{record("Engineer", "Acme", "d")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "file:"+path, sink.Name())
}

func TestFileSink_AccumulatesBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	sink := &FileSink{Path: path, Logger: zaptest.NewLogger(t)}
	ctx := context.Background()

	n, err := sink.Store(ctx, []models.JobRecord{record("Engineer", "Acme", "a"), record("Designer", "Acme", "a")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = sink.Store(ctx, []models.JobRecord{record("Engineer", "Acme", "dup"), record("Engineer", "Globex", "g")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].JobDescription)
	assert.Equal(t, "Designer", got[1].JobTitle)
	assert.Equal(t, "Globex", got[2].CompanyName)
}

func TestFileSink_ConcurrentStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	sink := &FileSink{Path: path, Logger: zaptest.NewLogger(t)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := sink.Store(context.Background(), []models.JobRecord{record(fmt.Sprintf("Role %d", i), "Acme", "d")})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func TestFileNameFor(t *testing.T) {
	assert.Equal(t, "jobs_careers.acme.example.xlsx", FileNameFor("https://careers.acme.example/go/India/1/"))
	assert.Equal(t, "jobs_localhost:8080.xlsx", FileNameFor("http://localhost:8080/jobs"))
	assert.Equal(t, DefaultFileName, FileNameFor("not a url"))
}
