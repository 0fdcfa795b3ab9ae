package store

import (
	"encoding/csv"
	"fmt"
	"os"
)

// writeSnapshot overwrites path with a header row plus the projected rows.
func writeSnapshot(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(snapshotColumns); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("write snapshot header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close() //nolint:errcheck,gosec // write error takes precedence
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec // flush error takes precedence
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
