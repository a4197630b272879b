package model

const (
	// MaxContentLength is the maximum number of bytes of normalized text
	// kept per page. Content beyond this bound is cut and the truncation
	// marker is appended.
	MaxContentLength = 10000

	// TruncationMarker is appended to page content that was cut at
	// MaxContentLength.
	TruncationMarker = "... [content truncated]"
)

// PageResult is the extracted representation of one explored page.
type PageResult struct {
	// URL is the absolute URL the page was fetched from.
	URL string `json:"url"`
	// Title is the document title, empty when the page has none.
	Title string `json:"title,omitempty"`
	// Content is the normalized main-content text, bounded by
	// MaxContentLength.
	Content string `json:"content"`
	// Links holds the highest-scoring outbound links found on the page,
	// in descending relevance order.
	Links []LinkCandidate `json:"links"`
}

// LinkCandidate is a hyperlink discovered on a page together with its
// relevance score. The score drives link selection and ordering; it is
// not part of the serialized result.
type LinkCandidate struct {
	// URL is the absolute target of the link.
	URL string `json:"url"`
	// Text is the normalized anchor text.
	Text string `json:"text"`
	// Relevance is the heuristic score assigned by the link extractor.
	Relevance float64 `json:"-"`
}

// TruncateContent bounds s to at most bound bytes. Strings within the
// bound are returned unchanged. Longer strings are cut so that the
// result, including the appended TruncationMarker, fits the bound. The
// cut lands on a rune boundary so the result stays valid UTF-8.
func TruncateContent(s string, bound int) string {
	if len(s) <= bound {
		return s
	}
	cut := bound - len(TruncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMarker
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
