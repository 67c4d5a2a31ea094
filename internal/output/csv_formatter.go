package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rpgo/projection-engine/internal/domain"
)

// CSVFormatter writes every report table to one stream. Each table is
// preceded by a "# name" line and separated from the next by a blank line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report is nil")
	}
	buf := &bytes.Buffer{}
	for i, t := range BuildTables(report) {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "# %s\n", t.Name)
		if err := writeTable(buf, t); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeTable(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write table %s: %w", t.Name, err)
	}
	return nil
}

// ExportCSV writes one <table>.csv file per report table into dir and
// returns the written paths.
func ExportCSV(dir string, report *domain.Report) ([]string, error) {
	if report == nil {
		return nil, errors.New("report is nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	var paths []string
	for _, t := range BuildTables(report) {
		path := filepath.Join(dir, t.Name+".csv")
		var buf bytes.Buffer
		if err := writeTable(&buf, t); err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
