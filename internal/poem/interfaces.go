package poem

import (
	"context"
	"time"
)

// Fetcher retrieves the raw content of a poem page, from cache or network.
type Fetcher interface {
	Fetch(ctx context.Context, url string, useCache bool) ([]byte, error)
}

// Parser extracts metadata and normalized text from fetched content.
// Implementations never fail: missing fields simply stay unset.
type Parser interface {
	Parse(raw []byte, sourceURL string) (DocumentMeta, ParsedText)
}

// Store persists coding records in an append-only log with a derived
// tabular snapshot.
type Store interface {
	Append(rec CodingRecord) error
	RebuildSnapshot() error
	LatestForURLAndCoder(url, coderID string) (*CodingRecord, error)
	LatestForURL(url string) (*CodingRecord, error)
	Stats() (Stats, error)
	CompletedCountForCoder(coderID string) (int, error)
}

// Clock supplies the current time and blocking sleeps so retry backoff can
// be tested without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Hasher computes digests for content-change detection.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// IDGenerator produces session IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
