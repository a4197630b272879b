package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// MinContentLength is the smallest main-content text accepted during
// selector scanning. Shorter matches are kept only as a fallback when
// no selector produces enough text.
const MinContentLength = 200

// contentSelectors is scanned in order, documentation-specific
// selectors before generic containers, with body as the last resort.
var contentSelectors = []string{
	".markdown-body",
	".readme",
	".docs-content",
	".documentation",
	"main",
	"article",
	"[role='main']",
	"#main",
	"#content",
	".content",
	".post-content",
	".entry-content",
	".article-body",
	"body",
}

// Document is a parsed page. The main-content element is selected once
// at construction and shared by content extraction and link scoring.
type Document struct {
	doc  *goquery.Document
	main *goquery.Selection
}

// NewDocument parses markup and selects the main-content element. For
// each selector in priority order the matching element with the
// longest text wins; the first selector whose winner meets
// MinContentLength is accepted, otherwise the longest candidate seen
// anywhere is kept.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	d := &Document{doc: doc}
	d.main = d.selectMain()
	return d, nil
}

// selectMain walks contentSelectors and returns the chosen element.
// Returns nil only for documents without a body.
func (d *Document) selectMain() *goquery.Selection {
	var (
		best    *goquery.Selection
		bestLen int
	)
	for _, selector := range contentSelectors {
		var (
			longest    *goquery.Selection
			longestLen int
		)
		d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			n := len(Normalize(s.Text()))
			if longest == nil || n > longestLen {
				longest, longestLen = s, n
			}
		})
		if longest == nil {
			continue
		}
		if longestLen >= MinContentLength {
			return longest
		}
		if best == nil || longestLen > bestLen {
			best, bestLen = longest, longestLen
		}
	}
	return best
}

// Title returns the document title, empty when the page has none.
func (d *Document) Title() string {
	return collapseSpaces(d.doc.Find("title").First().Text())
}

// Text returns the normalized text of the selected main-content
// element.
func (d *Document) Text() string {
	if d.main == nil {
		return ""
	}
	return Normalize(d.main.Text())
}

// Normalize canonicalizes extracted text: unicode NFC, spaces and tabs
// collapsed within lines, runs of blank lines reduced to one, edges
// trimmed. Normalize is idempotent.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = collapseSpaces(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// collapseSpaces reduces all runs of whitespace in one line to single
// spaces and trims the edges.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	headRe    = regexp.MustCompile(`(?is)<head\b.*?</head>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// PlainText strips markup with regular expressions and normalizes the
// remainder. It is the degradation path for markup the DOM parser
// rejects and for non-HTML textual responses.
func PlainText(html string) string {
	s := commentRe.ReplaceAllString(html, " ")
	s = headRe.ReplaceAllString(s, " ")
	s = scriptRe.ReplaceAllString(s, " ")
	s = styleRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	return Normalize(s)
}
