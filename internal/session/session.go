// Package session drives one coder's pass over a poem catalog.
//
// A Session is the pipeline boundary for callers: it converts fetch and
// parse failures into a per-poem error state instead of propagating them,
// while save failures surface immediately so the caller can retry without
// losing input.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lexfield/poemcoder/internal/catalog"
	"github.com/lexfield/poemcoder/internal/poem"
	"github.com/lexfield/poemcoder/internal/text"
)

// View is the current poem as presented to the coder. Err carries the
// per-poem error state; Meta and Text are zero-valued when it is set.
type View struct {
	Row  catalog.Row
	Meta poem.DocumentMeta
	Text poem.ParsedText
	Err  error
}

// Input is the coder's annotation for the current poem. CustomTags is the
// free-text field for tags outside the offered vocabulary; it is normalized
// and merged into Tags on save.
type Input struct {
	Tags       []string
	CustomTags string
	Moods      []string
	SentimentX float64
	SentimentY float64
	Notes      string
	Complete   bool
}

// Session holds the coder's position in the catalog and the pipeline
// components used to load and save poems. It replaces scattered global UI
// state with one explicit object.
type Session struct {
	id      string
	coderID string
	rows    []catalog.Row
	index   int

	fetcher poem.Fetcher
	parser  poem.Parser
	store   poem.Store
	clock   poem.Clock
	hasher  poem.Hasher
	logger  *zap.Logger
}

// Config carries the dependencies for a Session.
type Config struct {
	CoderID string
	Rows    []catalog.Row
	Fetcher poem.Fetcher
	Parser  poem.Parser
	Store   poem.Store
	Clock   poem.Clock
	Hasher  poem.Hasher
	IDs     poem.IDGenerator
	Logger  *zap.Logger
}

// New builds a Session positioned at the first poem.
func New(cfg Config) (*Session, error) {
	if strings.TrimSpace(cfg.CoderID) == "" {
		return nil, fmt.Errorf("coder ID is required")
	}
	if len(cfg.Rows) == 0 {
		return nil, fmt.Errorf("catalog has no poems")
	}
	id, err := cfg.IDs.NewID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	return &Session{
		id:      id,
		coderID: strings.TrimSpace(cfg.CoderID),
		rows:    cfg.Rows,
		fetcher: cfg.Fetcher,
		parser:  cfg.Parser,
		store:   cfg.Store,
		clock:   cfg.Clock,
		hasher:  cfg.Hasher,
		logger:  cfg.Logger.With(zap.String("session_id", id), zap.String("coder_id", strings.TrimSpace(cfg.CoderID))),
	}, nil
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// Index returns the current zero-based catalog position.
func (s *Session) Index() int { return s.index }

// Len returns the number of poems in the catalog.
func (s *Session) Len() int { return len(s.rows) }

// Resume positions the session at the coder's next uncoded poem: records are
// created in traversal order, so the resume index equals the number of
// distinct URLs the coder has completed.
func (s *Session) Resume() error {
	n, err := s.store.CompletedCountForCoder(s.coderID)
	if err != nil {
		return fmt.Errorf("resume position: %w", err)
	}
	if n > len(s.rows)-1 {
		n = len(s.rows) - 1
	}
	s.index = n
	s.logger.Info("session resumed", zap.Int("index", s.index))
	return nil
}

// Goto jumps to an absolute catalog position.
func (s *Session) Goto(i int) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("position %d out of range [0,%d)", i, len(s.rows))
	}
	s.index = i
	return nil
}

// Next advances to the following poem if there is one.
func (s *Session) Next() bool {
	if s.index >= len(s.rows)-1 {
		return false
	}
	s.index++
	return true
}

// Prev steps back to the previous poem if there is one.
func (s *Session) Prev() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Load fetches and parses the current poem. Failures become the view's
// error state; the session keeps navigating.
func (s *Session) Load(ctx context.Context) View {
	return s.load(ctx, true)
}

// Reload refetches the current poem bypassing the cache.
func (s *Session) Reload(ctx context.Context) View {
	return s.load(ctx, false)
}

func (s *Session) load(ctx context.Context, useCache bool) View {
	row := s.rows[s.index]
	raw, err := s.fetcher.Fetch(ctx, row.URL, useCache)
	if err != nil {
		s.logger.Warn("poem load failed", zap.String("url", row.URL), zap.Error(err))
		return View{Row: row, Err: err}
	}
	meta, parsed := s.parser.Parse(raw, row.URL)
	if strings.TrimSpace(parsed.Text) == "" {
		s.logger.Warn("no poem text extracted", zap.String("url", row.URL))
	}
	return View{Row: row, Meta: meta, Text: parsed}
}

// Latest returns the coder's most recent record for the current poem, if any.
func (s *Session) Latest() (*poem.CodingRecord, error) {
	return s.store.LatestForURLAndCoder(s.rows[s.index].URL, s.coderID)
}

// Save builds a coding record from the view and input and appends it. The
// record hashes the raw fragment the coder actually saw, so a later coding
// of the same URL can detect content drift.
func (s *Session) Save(view View, input Input) (poem.CodingRecord, error) {
	hash, err := s.hasher.Hash([]byte(view.Text.RawHTML))
	if err != nil {
		return poem.CodingRecord{}, fmt.Errorf("hash content: %w", err)
	}

	title := view.Meta.Title
	if title == "" {
		title = view.Row.Title
	}
	author := view.Meta.Author
	if author == "" {
		author = view.Row.Author
	}

	rec := poem.CodingRecord{
		TimestampISO: s.clock.Now().Format(time.RFC3339),
		CoderID:      s.coderID,
		URL:          view.Row.URL,
		PoemUUID:     view.Meta.PoemUUID,
		Title:        title,
		Author:       author,
		Year:         view.Row.Year,
		Group:        view.Row.Group,
		AuthorURL:    view.Row.AuthorURL,
		Tags:         mergeTags(input.Tags, input.CustomTags),
		Moods:        input.Moods,
		SentimentX:   input.SentimentX,
		SentimentY:   input.SentimentY,
		Notes:        strings.TrimSpace(input.Notes),
		IsComplete:   input.Complete,
		ContentHash:  hash,
		ExtractionOK: view.Err == nil,
	}
	if view.Err != nil {
		rec.Error = view.Err.Error()
	}

	if err := s.store.Append(rec); err != nil {
		return poem.CodingRecord{}, fmt.Errorf("save record: %w", err)
	}
	s.logger.Info("record saved",
		zap.String("url", rec.URL),
		zap.Bool("is_complete", rec.IsComplete),
	)
	return rec, nil
}

// mergeTags appends normalized free-text tags to the selected ones,
// dropping case-insensitive duplicates.
func mergeTags(selected []string, custom string) []string {
	tags := append([]string{}, selected...)
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		seen[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range text.NormalizeTags(custom, poem.AllCorpusTags) {
		if _, dup := seen[strings.ToLower(t)]; dup {
			continue
		}
		seen[strings.ToLower(t)] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
