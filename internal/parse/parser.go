// Package parse extracts poem metadata and normalized text from page HTML.
//
// Parsing is layered and best-effort: every extraction step is independent,
// malformed markup or structured data never fails the parse, and missing
// fields simply stay unset.
package parse

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lexfield/poemcoder/internal/poem"
	"github.com/lexfield/poemcoder/internal/text"
)

// Parser implements poem.Parser over goquery.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// jsonLD mirrors the subset of a schema.org graph node the parser reads.
type jsonLD struct {
	Graph []json.RawMessage `json:"@graph"`
}

type jsonLDArticle struct {
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	Description   string `json:"description"`
	DatePublished string `json:"datePublished"`
	DateModified  string `json:"dateModified"`
}

// Parse extracts metadata and body text from raw page content. It never
// fails: for unusable input the returned meta carries only the source URL.
func (p *Parser) Parse(raw []byte, sourceURL string) (poem.DocumentMeta, poem.ParsedText) {
	meta := poem.DocumentMeta{SourceURL: sourceURL}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return meta, poem.ParsedText{}
	}

	if href, ok := doc.Find("link[rel='canonical']").First().Attr("href"); ok && href != "" {
		meta.CanonicalURL = href
	}

	article := doc.Find("article[class*='card--poem-full']").First()
	if article.Length() > 0 {
		p.parseArticle(article, &meta)
	}

	p.parseStructuredData(doc, &meta)

	parsed := p.extractText(article)
	if strings.TrimSpace(parsed.Text) == "" {
		if desc := p.structuredDescription(doc); desc != "" {
			parsed.Text = desc
		}
	}
	return meta, parsed
}

func (p *Parser) parseArticle(article *goquery.Selection, meta *poem.DocumentMeta) {
	if id, ok := article.Attr("data-poem-uuid"); ok {
		meta.PoemUUID = id
	}

	if title := article.Find("h1").First(); title.Length() > 0 {
		meta.Title = text.Clean(title.Text())
	}

	if authorField := article.Find("[class*='field--field_author']").First(); authorField.Length() > 0 {
		// Prefer the explicitly marked byline link over any generic link.
		link := authorField.Find("a[data-byline-author-name]").First()
		if link.Length() == 0 {
			link = authorField.Find("a").First()
		}
		if link.Length() > 0 {
			meta.Author = text.Clean(link.Text())
			if href, ok := link.Attr("href"); ok {
				meta.AuthorHref = href
			}
		}
	}

	article.Find("[class*='field--field_poem_themes']").First().Find("a").
		Each(func(_ int, link *goquery.Selection) {
			// Display list in document order; duplicates stay.
			meta.Themes = append(meta.Themes, text.Clean(link.Text()))
		})

	if about := article.Find("[class*='field--field_about_this_poem']").First(); about.Length() > 0 {
		meta.About = text.Clean(about.Text())
	}

	if credit := article.Find("[class*='field--field_credit']").First(); credit.Length() > 0 {
		meta.PublicDomain = strings.Contains(strings.ToLower(credit.Text()), "public domain")
	}
}

// parseStructuredData reads the first Article node of each JSON-LD graph.
// The headline is only a fallback title, but the dates have no other source
// and always win. Malformed blocks are skipped silently.
func (p *Parser) parseStructuredData(doc *goquery.Document, meta *poem.DocumentMeta) {
	p.eachStructuredGraph(doc, func(articles []jsonLDArticle) bool {
		article := articles[0]
		if meta.Title == "" && article.Headline != "" {
			meta.Title = text.Clean(article.Headline)
		}
		if article.DatePublished != "" {
			meta.DatePublished = article.DatePublished
		}
		if article.DateModified != "" {
			meta.DateModified = article.DateModified
		}
		return false
	})
}

// structuredDescription returns the first Article description found across
// the JSON-LD graphs, with literal escaped newlines converted to real ones.
// Articles without a description are skipped, not treated as a miss.
func (p *Parser) structuredDescription(doc *goquery.Document) string {
	var out string
	p.eachStructuredGraph(doc, func(articles []jsonLDArticle) bool {
		for _, article := range articles {
			if article.Description == "" {
				continue
			}
			out = strings.ReplaceAll(text.Clean(article.Description), `\n`, "\n")
			return true
		}
		return false
	})
	return out
}

// eachStructuredGraph walks JSON-LD script blocks, invoking fn with the
// Article nodes of each graph until fn reports it is done.
func (p *Parser) eachStructuredGraph(doc *goquery.Document, fn func([]jsonLDArticle) bool) {
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var ld jsonLD
		if err := json.Unmarshal([]byte(script.Text()), &ld); err != nil {
			return true
		}
		var articles []jsonLDArticle
		for _, node := range ld.Graph {
			var article jsonLDArticle
			if err := json.Unmarshal(node, &article); err != nil {
				continue
			}
			if article.Type == "Article" {
				articles = append(articles, article)
			}
		}
		if len(articles) == 0 {
			return true
		}
		return !fn(articles)
	})
}
