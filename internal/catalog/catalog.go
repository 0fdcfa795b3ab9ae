// Package catalog loads the list of poems to code from a CSV file.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row is one poem to code. URL is always set; the display columns are
// whatever the CSV provided.
type Row struct {
	URL       string
	Title     string
	Author    string
	Year      string
	Group     string
	AuthorURL string
}

// headerAliases maps accepted header variants to canonical column names.
// Headers are compared after lowercasing and normalizing separators.
var headerAliases = map[string]string{
	"url":        "url",
	"link":       "url",
	"href":       "url",
	"poem_url":   "url",
	"title":      "title",
	"poem_title": "title",
	"author":     "author",
	"poet":       "author",
	"year":       "year",
	"group":      "group",
	"author_url": "author_url",
	"authorlink": "author_url",
	"poet_url":   "author_url",
}

// Load reads a poem catalog from path. The URL column is required; rows
// with empty or duplicate URLs are dropped and the remaining order is
// preserved.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	columns := make(map[string]int)
	for i, header := range records[0] {
		if canonical, ok := headerAliases[normalizeHeader(header)]; ok {
			if _, exists := columns[canonical]; !exists {
				columns[canonical] = i
			}
		}
	}
	if _, ok := columns["url"]; !ok {
		return nil, fmt.Errorf("catalog %s has no URL column (headers: %s)", path, strings.Join(records[0], ", "))
	}

	seen := make(map[string]struct{})
	var rows []Row
	for _, record := range records[1:] {
		url := strings.TrimSpace(field(record, columns, "url"))
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		rows = append(rows, Row{
			URL:       url,
			Title:     strings.TrimSpace(field(record, columns, "title")),
			Author:    strings.TrimSpace(field(record, columns, "author")),
			Year:      strings.TrimSpace(field(record, columns, "year")),
			Group:     strings.TrimSpace(field(record, columns, "group")),
			AuthorURL: strings.TrimSpace(field(record, columns, "author_url")),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s has no valid URLs", path)
	}
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
