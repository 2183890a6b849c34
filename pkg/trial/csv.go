package trial

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Source CSV column headers. The intervention column is optional; all
// others are required.
const (
	ColNCTID        = "NCT Number"
	ColBriefTitle   = "Brief Title"
	ColFullTitle    = "Full Title"
	ColConditions   = "Conditions"
	ColIntervention = "Intervention Description"
	ColStatus       = "Overall Status"
	ColPhase        = "Phases"
	ColPurpose      = "Primary Purpose"
	ColStartDate    = "Start Date"
)

var requiredColumns = []string{
	ColNCTID, ColBriefTitle, ColFullTitle, ColConditions,
	ColStatus, ColPhase, ColPurpose, ColStartDate,
}

// DataShapeError reports malformed input data: a missing header row, a
// missing required column, or an empty record set where one is required.
// It is fatal to the operation that raised it and is never retried.
type DataShapeError struct {
	Reason string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("data shape error: %s", e.Reason)
}

// ReadCSV parses trial records from delimited text with a header row.
//
// Input: reader over CSV data, header row first
// Output: records in file order
// Behavior: Fails with *DataShapeError when a required column is absent
//
// Column order is free; fields are located by header name. Rows shorter
// than the header are rejected by the csv reader itself.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &DataShapeError{Reason: "input is empty, header row required"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &DataShapeError{Reason: fmt.Sprintf("missing required column %q", name)}
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}

		records = append(records, Record{
			NCTID:        field(row, ColNCTID),
			BriefTitle:   field(row, ColBriefTitle),
			FullTitle:    field(row, ColFullTitle),
			Conditions:   field(row, ColConditions),
			Intervention: field(row, ColIntervention),
			Status:       field(row, ColStatus),
			Phase:        field(row, ColPhase),
			Purpose:      field(row, ColPurpose),
			StartDate:    field(row, ColStartDate),
		})
	}

	return records, nil
}

// ReadCSVFile reads trial records from a CSV file on disk.
func ReadCSVFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// WriteCSV writes records with the standard header row, one record per
// row. Used to persist demo samples.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	header := []string{
		ColNCTID, ColBriefTitle, ColFullTitle, ColConditions,
		ColIntervention, ColStatus, ColPhase, ColPurpose, ColStartDate,
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.NCTID, rec.BriefTitle, rec.FullTitle, rec.Conditions,
			rec.Intervention, rec.Status, rec.Phase, rec.Purpose, rec.StartDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.NCTID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to a CSV file, replacing any existing file.
func WriteCSVFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return WriteCSV(f, records)
}
