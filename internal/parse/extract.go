package parse

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/lexfield/poemcoder/internal/poem"
	"github.com/lexfield/poemcoder/internal/text"
)

// extractText pulls the poem body out of the article's body field,
// preserving line breaks and stanza structure. The raw markup fragment is
// retained so coding records can hash the content they were made against.
func (p *Parser) extractText(article *goquery.Selection) poem.ParsedText {
	if article.Length() == 0 {
		return poem.ParsedText{}
	}
	body := article.Find("[class*='field--body']").First()
	if body.Length() == 0 {
		return poem.ParsedText{}
	}

	rawHTML, err := goquery.OuterHtml(body)
	if err != nil {
		rawHTML = ""
	}
	return poem.ParsedText{
		RawHTML: rawHTML,
		Text:    stanzaText(body),
	}
}

// stanzaText splits the body into block-level children and joins the
// surviving blocks with blank lines marking stanza boundaries.
func stanzaText(body *goquery.Selection) string {
	blocks := body.Find("p, div")
	if blocks.Length() == 0 {
		blocks = body
	}

	var stanzas []string
	blocks.Each(func(_ int, block *goquery.Selection) {
		cleaned := cleanBlock(block)
		if cleaned != "" {
			stanzas = append(stanzas, cleaned)
		}
	})
	return strings.Join(stanzas, "\n\n")
}

// cleanBlock renders one block to text and normalizes it: entities decoded,
// trailing whitespace stripped per line, internal blank lines preserved.
// Returns "" for blocks that are empty after cleanup.
func cleanBlock(block *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range block.Nodes {
		renderText(&sb, node)
	}

	lines := strings.Split(text.Clean(sb.String()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// renderText walks the node tree appending text content, converting <br>
// elements to newlines. Spans marked long-line hold poem lines too long to
// wrap; their content is kept as-is apart from trailing padding spaces, so
// they are never re-flowed.
func renderText(sb *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		sb.WriteString(node.Data)
		return
	case html.ElementNode:
		switch {
		case node.Data == "br":
			sb.WriteByte('\n')
			return
		case node.Data == "span" && hasClass(node, "long-line"):
			sb.WriteString(strings.TrimRight(nodeText(node), "  "))
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderText(sb, child)
	}
}

// nodeText collects the raw text beneath a node, with <br> as newlines.
func nodeText(node *html.Node) string {
	var sb strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderText(&sb, child)
	}
	return sb.String()
}

func hasClass(node *html.Node, class string) bool {
	for _, attr := range node.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
