package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joaomarcelooneua/CaliaDash/internal/logger"
	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

// IngestError wraps any failure to reach or read the raw source. The core
// propagates it as-is and never retries past the fetch layer.
type IngestError struct {
	Source string
	Err    error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Load reads the first sheet of the workbook at path and returns one raw
// record per data row, keyed by the untouched header labels. Rows with no
// non-empty cell are skipped.
func Load(path string) ([]types.RawRecord, error) {
	log := logger.New().WithField("component", "dataset.loader").WithField("path", path)
	log.Info("opening inventory workbook")

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.WithError(err).Error("open failed")
		return nil, &IngestError{Source: path, Err: err}
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		log.WithError(err).Error("read failed")
		return nil, &IngestError{Source: path, Err: err}
	}
	log.WithField("rows", len(records)).Info("inventory workbook loaded")
	return records, nil
}

func readRecords(f *excelize.File) ([]types.RawRecord, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	var out []types.RawRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec := types.RawRecord{}
		empty := true
		for j, label := range header {
			if strings.TrimSpace(label) == "" {
				continue
			}
			val := ""
			if j < len(row) {
				val = row[j]
			}
			if strings.TrimSpace(val) != "" {
				empty = false
			}
			rec[label] = val
		}
		if empty {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
