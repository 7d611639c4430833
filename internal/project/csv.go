package project

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/memoweave/memoweave/internal/model"
)

// Artifact filenames written under the output directory.
const (
	TemporalCSVName = "temporal_consistency.csv"
	RoleCSVName     = "role_completeness.csv"
)

// WriteTemporalCSV writes the temporal view as a CSV artifact and returns
// the file path.
func (p *Projector) WriteTemporalCSV(dir string, rows []model.TemporalRow) (string, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"chapter_id", "event_text", "time_raw", "time_type"})
	for _, row := range rows {
		records = append(records, []string{
			fmt.Sprint(row.ChapterID), row.EventText, row.TimeRaw, string(row.TimeType),
		})
	}
	return writeCSV(filepath.Join(dir, TemporalCSVName), records)
}

// WriteRoleCSV writes the role-completeness view as a CSV artifact and
// returns the file path.
func (p *Projector) WriteRoleCSV(dir string, rows []model.RoleRow) (string, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"chapter_id", "event_text", "actor", "target", "location"})
	for _, row := range rows {
		records = append(records, []string{
			fmt.Sprint(row.ChapterID), row.EventText, row.Actor, row.Target, row.Location,
		})
	}
	return writeCSV(filepath.Join(dir, RoleCSVName), records)
}

func writeCSV(path string, records [][]string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return path, nil
}
