package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/webexplore/webexplore/internal/model"
)

const (
	// textScorePerRune is the relevance contribution per rune of anchor
	// text, capped at textScoreCap.
	textScorePerRune = 0.1
	// textScoreCap saturates the anchor-text length contribution.
	textScoreCap = 5.0
	// mainContentBonus is added when the anchor sits inside the
	// selected main-content element.
	mainContentBonus = 5.0
	// informativeTermBonus is added once per distinct informative term
	// found in the anchor text.
	informativeTermBonus = 2.0
)

// informativeTerms mark anchor text that usually leads to substantive
// pages. Matching is case-insensitive substring presence.
var informativeTerms = []string{
	"guide", "docs", "documentation", "tutorial", "reference",
	"example", "api", "learn", "how to",
}

// boilerplateLabels name links that never lead to substantive content.
// The walker drops candidates whose labels match before selection.
var boilerplateLabels = []string{
	"home", "contact", "about", "login", "sign up", "register",
	"search", "privacy", "terms", "cookies",
}

// skippedSchemes are href prefixes that do not address fetchable
// documents.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// IsBoilerplate reports whether anchor text matches the boilerplate
// label list, exactly or as the leading word of a longer label such as
// "privacy policy".
func IsBoilerplate(text string) bool {
	t := strings.ToLower(collapseSpaces(text))
	for _, label := range boilerplateLabels {
		if t == label || strings.HasPrefix(t, label+" ") {
			return true
		}
	}
	return false
}

// Score computes the relevance of one link from its anchor text and
// placement: rune count over ten capped at five, plus five inside the
// main-content element, plus two per distinct informative term.
func Score(text string, inMainContent bool) float64 {
	score := float64(len([]rune(text))) * textScorePerRune
	if score > textScoreCap {
		score = textScoreCap
	}
	if inMainContent {
		score += mainContentBonus
	}
	lower := strings.ToLower(text)
	for _, term := range informativeTerms {
		if strings.Contains(lower, term) {
			score += informativeTermBonus
		}
	}
	return score
}

// Links returns every usable hyperlink in the document, resolved
// against base and scored, in document order with duplicates removed.
// Anchors without an href, fragment-only anchors, and non-document
// schemes are dropped.
func (d *Document) Links(base *url.URL) []model.LinkCandidate {
	mainAnchors := d.mainAnchorSet()

	var links []model.LinkCandidate
	seen := make(map[string]struct{})

	d.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		for _, scheme := range skippedSchemes {
			if strings.HasPrefix(lower, scheme) {
				return
			}
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""

		target := resolved.String()
		if _, dup := seen[target]; dup {
			return
		}
		seen[target] = struct{}{}

		text := collapseSpaces(s.Text())
		inMain := false
		if len(s.Nodes) > 0 {
			_, inMain = mainAnchors[s.Nodes[0]]
		}
		links = append(links, model.LinkCandidate{
			URL:       target,
			Text:      text,
			Relevance: Score(text, inMain),
		})
	})
	return links
}

// mainAnchorSet collects the anchor nodes inside the selected
// main-content element so Links can apply the placement bonus.
func (d *Document) mainAnchorSet() map[*html.Node]struct{} {
	set := make(map[*html.Node]struct{})
	if d.main == nil {
		return set
	}
	d.main.Find("a").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			set[n] = struct{}{}
		}
	})
	return set
}
