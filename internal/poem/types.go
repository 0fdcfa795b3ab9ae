// Package poem defines core types shared across subsystems.
package poem

// DocumentMeta captures metadata extracted from a poem page. Only SourceURL
// is guaranteed to be present; everything else is best-effort and stays empty
// when the page does not provide it.
type DocumentMeta struct {
	SourceURL     string   `json:"source_url"`
	CanonicalURL  string   `json:"canonical_url,omitempty"`
	PoemUUID      string   `json:"poem_uuid,omitempty"`
	Title         string   `json:"title,omitempty"`
	Author        string   `json:"author,omitempty"`
	AuthorHref    string   `json:"author_href,omitempty"`
	DatePublished string   `json:"date_published,omitempty"`
	DateModified  string   `json:"date_modified,omitempty"`
	Themes        []string `json:"themes,omitempty"`
	About         string   `json:"about,omitempty"`
	PublicDomain  bool     `json:"public_domain"`
}

// ParsedText holds the poem body in two forms: the raw markup fragment it was
// extracted from, and the normalized text with stanzas separated by blank
// lines and no trailing whitespace per line.
type ParsedText struct {
	RawHTML string `json:"raw_html"`
	Text    string `json:"text"`
}

// CodingRecord is one immutable event in the append-only coding log. Records
// are never updated in place; a newer record for the same (url, coder)
// supersedes older ones for "latest" queries.
type CodingRecord struct {
	TimestampISO string   `json:"timestamp_iso"`
	CoderID      string   `json:"coder_id"`
	URL          string   `json:"url"`
	PoemUUID     string   `json:"poem_uuid,omitempty"`
	Title        string   `json:"title,omitempty"`
	Author       string   `json:"author,omitempty"`
	Year         string   `json:"year,omitempty"`
	Group        string   `json:"group,omitempty"`
	AuthorURL    string   `json:"author_url,omitempty"`
	Tags         []string `json:"tags"`
	Moods        []string `json:"moods"`
	SentimentX   float64  `json:"sentiment_x"`
	SentimentY   float64  `json:"sentiment_y"`
	Notes        string   `json:"notes"`
	IsComplete   bool     `json:"is_complete"`
	ContentHash  string   `json:"content_hash,omitempty"`
	ExtractionOK bool     `json:"extraction_ok"`
	Error        string   `json:"error,omitempty"`
}

// Stats summarizes coding progress across the whole log.
type Stats struct {
	TotalRecords int `json:"total_records"`
	// CompletedRecords counts distinct URLs with at least one complete
	// record, not total completed events.
	CompletedRecords int `json:"completed_records"`
	UniqueURLs       int `json:"unique_urls"`
}
