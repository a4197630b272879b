package extract

import (
	"math"
	"net/url"
	"strings"
	"testing"
)

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestDocumentLinks(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://example.com/docs/")

	t.Run("unusable anchors are dropped", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>` +
			strings.Repeat("<p>padding text so the main selector qualifies here</p>", 5) + `
			<a>no href at all</a>
			<a href="#section">fragment only</a>
			<a href="javascript:void(0)">script</a>
			<a href="mailto:team@example.com">mail</a>
			<a href="tel:+15551234">call</a>
			<a href="guide.html">the kept one</a>
		</main></body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		links := doc.Links(base)
		if len(links) != 1 {
			t.Fatalf("len(links) = %d, want 1: %v", len(links), links)
		}
		if links[0].URL != "https://example.com/docs/guide.html" {
			t.Errorf("URL = %q, want the resolved relative link", links[0].URL)
		}
	})

	t.Run("relative and absolute hrefs resolve against the base", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/api">api root</a>
			<a href="nested/page">nested</a>
			<a href="https://other.example.org/x">cross domain</a>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		links := doc.Links(base)
		want := []string{
			"https://example.com/api",
			"https://example.com/docs/nested/page",
			"https://other.example.org/x",
		}
		if len(links) != len(want) {
			t.Fatalf("len(links) = %d, want %d", len(links), len(want))
		}
		for i, w := range want {
			if links[i].URL != w {
				t.Errorf("links[%d].URL = %q, want %q", i, links[i].URL, w)
			}
		}
	})

	t.Run("duplicate targets are kept once", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/page">first</a>
			<a href="/page#top">same page, fragment stripped</a>
			<a href="/page">third</a>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		if links := doc.Links(base); len(links) != 1 {
			t.Errorf("len(links) = %d, want 1", len(links))
		}
	})

	t.Run("main content placement raises the score", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>` + strings.Repeat("<p>long enough main content for the selector scan</p>", 5) + `
				<a href="/inside">inside link</a>
			</main>
			<footer><a href="/outside">outside link</a></footer>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		links := doc.Links(base)
		if len(links) != 2 {
			t.Fatalf("len(links) = %d, want 2", len(links))
		}
		byURL := map[string]float64{}
		for _, l := range links {
			byURL[l.URL] = l.Relevance
		}
		inside := byURL["https://example.com/inside"]
		outside := byURL["https://example.com/outside"]
		if inside-outside < mainContentBonus-0.5 {
			t.Errorf("inside = %v, outside = %v, want a %v placement gap",
				inside, outside, mainContentBonus)
		}
	})
}

func TestScore(t *testing.T) {
	t.Parallel()

	t.Run("text length contribution saturates", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			textLen int
			want    float64
		}{
			{5, 0.5},
			{50, 5},
			{500, 5},
		}
		for _, tt := range tests {
			text := strings.Repeat("x", tt.textLen)
			if got := Score(text, false); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%d chars) = %v, want %v", tt.textLen, got, tt.want)
			}
		}
	})

	t.Run("informative terms add two each", func(t *testing.T) {
		t.Parallel()

		// 12 runes of text contribute 1.2; "api" and "guide" add 2 each.
		got := Score("api vs guide", false)
		want := 1.2 + 2 + 2
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Score() = %v, want %v", got, want)
		}
	})

	t.Run("main placement adds five", func(t *testing.T) {
		t.Parallel()

		text := "plain words"
		if got := Score(text, true) - Score(text, false); math.Abs(got-5) > 1e-9 {
			t.Errorf("placement bonus = %v, want 5", got)
		}
	})
}

func TestIsBoilerplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"Home", true},
		{"Contact", true},
		{"About us", true},
		{"Login", true},
		{"Sign up", true},
		{"Register", true},
		{"Search", true},
		{"Privacy Policy", true},
		{"Terms of Service", true},
		{"Cookies", true},
		{"Getting Started Guide", false},
		{"API Reference", false},
		{"Homebrew formulas", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBoilerplate(tt.text); got != tt.want {
			t.Errorf("IsBoilerplate(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
