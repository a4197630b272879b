package fetch

import (
	"strings"
	"testing"
	"time"
)

func TestNewRenderedFetcherOptions(t *testing.T) {
	t.Parallel()

	f := NewRenderedFetcher(
		WithNavigationTimeout(5*time.Second),
		WithNavigationAttempts(2),
		WithNavigationBackoff(250*time.Millisecond),
		WithRenderedUserAgent("custom-agent"),
	)

	if f.navTimeout != 5*time.Second {
		t.Errorf("navTimeout = %s, want 5s", f.navTimeout)
	}
	if f.attempts != 2 {
		t.Errorf("attempts = %d, want 2", f.attempts)
	}
	if f.backoffWait != 250*time.Millisecond {
		t.Errorf("backoffWait = %s, want 250ms", f.backoffWait)
	}
	if f.userAgent != "custom-agent" {
		t.Errorf("userAgent = %q, want custom-agent", f.userAgent)
	}
}

func TestRenderedFetcherCloseBeforeStart(t *testing.T) {
	t.Parallel()

	f := NewRenderedFetcher()
	// The browser starts lazily; Close without a prior Fetch is a no-op.
	f.Close()
	f.Close()
}

func TestBlockedResourcePatterns(t *testing.T) {
	t.Parallel()

	// Text assets must never appear in the block list.
	for _, pattern := range blockedResourcePatterns {
		for _, textual := range []string{".html", ".htm", ".js", ".json", ".xml"} {
			if strings.HasSuffix(pattern, textual) {
				t.Errorf("pattern %q blocks a textual resource", pattern)
			}
		}
	}
}
