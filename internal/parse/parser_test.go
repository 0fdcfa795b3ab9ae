package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexfield/poemcoder/internal/poem"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<link rel="canonical" href="https://poets.org/poem/sample-poem"/>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Poets.org"},
    {
      "@type": "Article",
      "headline": "Sample Poem",
      "description": "First line\\nSecond line",
      "datePublished": "2020-04-01",
      "dateModified": "2021-06-15"
    }
  ]
}
</script>
</head>
<body>
<article class="card card--poem-full" data-poem-uuid="7a1f2c33-9d1e-4b5f-8a77-0c2d1e4f5a66">
  <h1>  The Long Field </h1>
  <div class="field field--field_author">
    <a href="/poet/anonymous">anon</a>
    <a data-byline-author-name href="/poet/jane-doe">Jane Doe</a>
  </div>
  <div class="field field--field_poem_themes">
    <a href="/themes/nature">Nature</a>
    <a href="/themes/loss">Loss</a>
    <a href="/themes/nature">Nature</a>
  </div>
  <div class="field field--field_about_this_poem">
    <p>About the field &amp; its seasons.</p>
  </div>
  <div class="field field--field_credit">
    This poem is in the public domain.
  </div>
  <div class="field field--body">
    <p>The field lies open<br/>under a pale sky&nbsp;</p>
    <p></p>
    <p><span class="long-line">a line far too long for the narrow column to hold&#160;&#160; </span><br/>and one that is not</p>
  </div>
</article>
</body>
</html>`

func TestParseMetadata(t *testing.T) {
	t.Parallel()

	p := New()
	meta, _ := p.Parse([]byte(samplePage), "https://poets.org/poem/sample-poem?ref=x")

	require.Equal(t, "https://poets.org/poem/sample-poem?ref=x", meta.SourceURL)
	require.Equal(t, "https://poets.org/poem/sample-poem", meta.CanonicalURL)
	require.Equal(t, "7a1f2c33-9d1e-4b5f-8a77-0c2d1e4f5a66", meta.PoemUUID)
	require.Equal(t, "The Long Field", meta.Title, "heading wins over JSON-LD headline")
	require.Equal(t, "Jane Doe", meta.Author, "byline-marked link preferred over generic link")
	require.Equal(t, "/poet/jane-doe", meta.AuthorHref)
	require.Equal(t, []string{"Nature", "Loss", "Nature"}, meta.Themes, "document order, duplicates preserved")
	require.Equal(t, "About the field & its seasons.", meta.About)
	require.True(t, meta.PublicDomain)
	require.Equal(t, "2020-04-01", meta.DatePublished)
	require.Equal(t, "2021-06-15", meta.DateModified)
}

func TestParseBodyText(t *testing.T) {
	t.Parallel()

	p := New()
	_, parsed := p.Parse([]byte(samplePage), "https://poets.org/poem/sample-poem")

	want := "The field lies open\nunder a pale sky\n\na line far too long for the narrow column to hold\nand one that is not"
	require.Equal(t, want, parsed.Text)
	require.Contains(t, parsed.RawHTML, "field--body")
	require.Contains(t, parsed.RawHTML, "long-line")
}

func TestParseIdempotent(t *testing.T) {
	t.Parallel()

	p := New()
	_, first := p.Parse([]byte(samplePage), "https://poets.org/poem/sample-poem")
	_, second := p.Parse([]byte(samplePage), "https://poets.org/poem/sample-poem")
	require.Equal(t, first, second)
}

func TestParseHeadlineFallbackAndDescription(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<script type="application/ld+json">
{"@graph": [{"@type": "Article", "headline": "Fallback Title", "description": "only\\nthe description"}]}
</script>
</head><body><p>no poem article here</p></body></html>`

	p := New()
	meta, parsed := p.Parse([]byte(page), "https://poets.org/poem/missing")

	require.Equal(t, "Fallback Title", meta.Title)
	require.Equal(t, "only\nthe description", parsed.Text, "description fallback with unescaped newlines")
	require.Empty(t, parsed.RawHTML)
	require.Empty(t, meta.PoemUUID)
	require.Empty(t, meta.Themes)
}

func TestParseDescriptionFallbackSkipsArticlesWithoutOne(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<script type="application/ld+json">
{"@graph": [
  {"@type": "Article", "headline": "No Description Here", "datePublished": "2020-04-01"},
  {"@type": "Article", "description": "the\\npoem", "datePublished": "2022-12-31"}
]}
</script>
</head><body><p>no poem article here</p></body></html>`

	p := New()
	meta, parsed := p.Parse([]byte(page), "https://poets.org/poem/graph")

	require.Equal(t, "the\npoem", parsed.Text, "later Articles in the graph still supply the description")
	require.Equal(t, "No Description Here", meta.Title)
	require.Equal(t, "2020-04-01", meta.DatePublished, "metadata reads only the first Article of a graph")
}

func TestParseMalformedStructuredDataSkipped(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<script type="application/ld+json">{not json at all</script>
<script type="application/ld+json">
{"@graph": [{"@type": "Article", "datePublished": "1999-01-01"}]}
</script>
</head><body></body></html>`

	p := New()
	meta, _ := p.Parse([]byte(page), "https://poets.org/poem/x")
	require.Equal(t, "1999-01-01", meta.DatePublished)
}

func TestParseUnusableInput(t *testing.T) {
	t.Parallel()

	p := New()
	for _, raw := range [][]byte{nil, []byte(""), []byte("%%% not html <<<>")} {
		meta, parsed := p.Parse(raw, "https://poets.org/poem/bad")
		require.Equal(t, poem.DocumentMeta{SourceURL: "https://poets.org/poem/bad"}, meta)
		require.Empty(t, parsed.Text)
	}
}

func TestParseBodyWithoutBlockChildren(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<article class="card--poem-full">
  <div class="field--body">one line<br/>two line&nbsp;&nbsp;</div>
</article>
</body></html>`

	p := New()
	_, parsed := p.Parse([]byte(page), "https://poets.org/poem/flat")
	require.Equal(t, "one line\ntwo line", parsed.Text)
}
