// Package store persists coding records in an append-only JSONL log with a
// derived CSV snapshot.
//
// All queries are read-through over the log file: no index is kept across
// calls, which is acceptable for a single coder's session-sized workload. A
// missing log is treated as "no records", and unparseable lines are skipped,
// never fatal.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lexfield/poemcoder/internal/metrics"
	"github.com/lexfield/poemcoder/internal/poem"
)

const (
	logFilename      = "codings.jsonl"
	snapshotFilename = "codings.csv"

	// Poem pages are small; a single record line never approaches this.
	maxLineSize = 4 * 1024 * 1024
)

// snapshotColumns is the fixed snapshot column order.
var snapshotColumns = []string{
	"timestamp_iso", "coder_id", "url", "poem_uuid", "title", "author",
	"year", "group", "author_url", "tags_joined", "moods_joined",
	"sentiment_x", "sentiment_y", "notes", "is_complete", "content_hash",
	"extraction_ok", "error",
}

// Store implements poem.Store over a records directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New returns a Store rooted at dir. The directory is created on first append.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("records directory is required")
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) logPath() string      { return filepath.Join(s.dir, logFilename) }
func (s *Store) snapshotPath() string { return filepath.Join(s.dir, snapshotFilename) }

// Append serializes rec as one log line, writes and flushes it, then
// regenerates the snapshot. A single write per call keeps prior lines intact
// even if this one is cut short.
func (s *Store) Append(rec poem.CodingRecord) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create records dir %s: %w", s.dir, err)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f, err := os.OpenFile(s.logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("append record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close() //nolint:errcheck,gosec // sync error takes precedence
		return fmt.Errorf("flush log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	metrics.ObserveRecordAppended()

	return s.RebuildSnapshot()
}

// scan streams every parseable record in append order. Unparseable lines are
// logged and skipped; a missing log file yields no records.
func (s *Store) scan(fn func(rec poem.CodingRecord)) error {
	f, err := os.Open(s.logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec poem.CodingRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			s.logger.Warn("skipping unparseable log line",
				zap.Int("line", lineNum),
				zap.Error(err),
			)
			continue
		}
		fn(rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	return nil
}

// LatestForURLAndCoder returns the most recently appended record matching
// both url and the trimmed coder ID, or nil if none match. A blank coder ID
// never matches anything.
func (s *Store) LatestForURLAndCoder(url, coderID string) (*poem.CodingRecord, error) {
	coderID = strings.TrimSpace(coderID)
	if coderID == "" {
		return nil, nil
	}

	var latest *poem.CodingRecord
	err := s.scan(func(rec poem.CodingRecord) {
		if rec.URL == url && rec.CoderID == coderID {
			r := rec
			latest = &r
		}
	})
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// LatestForURL returns the most recently appended record for url regardless
// of coder, or nil if none match.
func (s *Store) LatestForURL(url string) (*poem.CodingRecord, error) {
	var latest *poem.CodingRecord
	err := s.scan(func(rec poem.CodingRecord) {
		if rec.URL == url {
			r := rec
			latest = &r
		}
	})
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// Stats summarizes the log in a single pass.
func (s *Store) Stats() (poem.Stats, error) {
	urlsSeen := make(map[string]struct{})
	completedURLs := make(map[string]struct{})
	var stats poem.Stats

	err := s.scan(func(rec poem.CodingRecord) {
		if rec.URL == "" {
			return
		}
		stats.TotalRecords++
		urlsSeen[rec.URL] = struct{}{}
		if rec.IsComplete {
			completedURLs[rec.URL] = struct{}{}
		}
	})
	if err != nil {
		return poem.Stats{}, err
	}

	stats.UniqueURLs = len(urlsSeen)
	stats.CompletedRecords = len(completedURLs)
	return stats, nil
}

// CompletedCountForCoder counts distinct URLs the coder has at least one
// complete record for. Duplicate completions of a URL count once, which makes
// the value usable as the coder's resume index.
func (s *Store) CompletedCountForCoder(coderID string) (int, error) {
	coderID = strings.TrimSpace(coderID)
	if coderID == "" {
		return 0, nil
	}

	completed := make(map[string]struct{})
	err := s.scan(func(rec poem.CodingRecord) {
		if rec.CoderID == coderID && rec.IsComplete {
			completed[rec.URL] = struct{}{}
		}
	})
	if err != nil {
		return 0, err
	}
	return len(completed), nil
}

// RebuildSnapshot projects every parseable log record into a flat CSV row
// and overwrites the snapshot file in full, making it idempotent and
// self-healing from a corrupted partial snapshot.
func (s *Store) RebuildSnapshot() error {
	var rows [][]string
	err := s.scan(func(rec poem.CodingRecord) {
		rows = append(rows, snapshotRow(rec))
	})
	if err != nil {
		return err
	}
	if rows == nil {
		// No records yet; nothing to project.
		return nil
	}

	if err := writeSnapshot(s.snapshotPath(), rows); err != nil {
		return err
	}
	metrics.ObserveSnapshotRebuild()
	return nil
}

func snapshotRow(rec poem.CodingRecord) []string {
	return []string{
		rec.TimestampISO,
		rec.CoderID,
		rec.URL,
		rec.PoemUUID,
		rec.Title,
		rec.Author,
		rec.Year,
		rec.Group,
		rec.AuthorURL,
		strings.Join(rec.Tags, "; "),
		strings.Join(rec.Moods, "; "),
		strconv.FormatFloat(rec.SentimentX, 'g', -1, 64),
		strconv.FormatFloat(rec.SentimentY, 'g', -1, 64),
		rec.Notes,
		strconv.FormatBool(rec.IsComplete),
		rec.ContentHash,
		strconv.FormatBool(rec.ExtractionOK),
		rec.Error,
	}
}
