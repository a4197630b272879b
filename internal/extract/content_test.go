package extract

import (
	"strings"
	"testing"
)

func repeatSentence(s string, n int) string {
	return strings.Repeat(s+" ", n)
}

func TestNewDocumentSelectsMainContent(t *testing.T) {
	t.Parallel()

	longText := repeatSentence("This paragraph carries the real page content.", 10)

	t.Run("documentation selector wins over generic containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>` + repeatSentence("Generic main text that is long enough to qualify.", 10) + `</main>
			<div class="markdown-body">` + longText + `</div>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		if got := doc.Text(); !strings.Contains(got, "real page content") {
			t.Errorf("Text() = %q, want the markdown-body content", got)
		}
		if got := doc.Text(); strings.Contains(got, "Generic main text") {
			t.Error("Text() should not include the generic container")
		}
	})

	t.Run("longest match wins within one selector", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article>short note</article>
			<article>` + longText + `</article>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		if got := doc.Text(); !strings.Contains(got, "real page content") {
			t.Errorf("Text() = %q, want the longer article", got)
		}
	})

	t.Run("short matches fall back to best so far", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>tiny</main>
			<article>a slightly longer but still short article body</article>
		</body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		got := doc.Text()
		if got == "" {
			t.Fatal("Text() = empty, want the best short candidate")
		}
		if !strings.Contains(got, "slightly longer") {
			t.Errorf("Text() = %q, want the longest short candidate", got)
		}
	})

	t.Run("body is the last resort", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>` + longText + `</p></body></html>`

		doc, err := NewDocument(html)
		if err != nil {
			t.Fatalf("NewDocument() error = %v", err)
		}
		if got := doc.Text(); !strings.Contains(got, "real page content") {
			t.Errorf("Text() = %q, want the body text", got)
		}
	})
}

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument(`<html><head><title>  API   Reference
	</title></head><body><p>x</p></body></html>`)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	if got, want := doc.Title(), "API Reference"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spaces and tabs collapse within lines",
			input: "hello \t  world",
			want:  "hello world",
		},
		{
			name:  "blank line runs collapse to one",
			input: "first\n\n\n\nsecond",
			want:  "first\n\nsecond",
		},
		{
			name:  "edges are trimmed",
			input: "\n\n  padded  \n\n",
			want:  "padded",
		},
		{
			name:  "windows line endings are unified",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"  multiple   spaces\n\n\nand\r\nline   breaks  ",
		"already clean",
		"",
		"日本語  テキスト\n\n\n確認",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>ignored</title><style>body{color:red}</style></head>
	<body><script>var x = "<p>not text</p>";</script>
	<!-- a comment -->
	<p>Visible &amp; kept   text</p></body></html>`

	got := PlainText(html)
	if got != "Visible & kept text" {
		t.Errorf("PlainText() = %q, want %q", got, "Visible & kept text")
	}
}
