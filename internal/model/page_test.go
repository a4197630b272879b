package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateContent(t *testing.T) {
	t.Parallel()

	t.Run("short content is unchanged", func(t *testing.T) {
		t.Parallel()

		s := "hello world"
		if got := TruncateContent(s, MaxContentLength); got != s {
			t.Errorf("TruncateContent() = %q, want %q", got, s)
		}
	})

	t.Run("content at the bound is unchanged", func(t *testing.T) {
		t.Parallel()

		s := strings.Repeat("a", MaxContentLength)
		if got := TruncateContent(s, MaxContentLength); got != s {
			t.Error("content exactly at the bound should not be truncated")
		}
	})

	t.Run("long content is cut to the bound with marker", func(t *testing.T) {
		t.Parallel()

		s := strings.Repeat("a", MaxContentLength+500)
		got := TruncateContent(s, MaxContentLength)

		if len(got) != MaxContentLength {
			t.Errorf("len = %d, want %d", len(got), MaxContentLength)
		}
		if !strings.HasSuffix(got, TruncationMarker) {
			t.Errorf("truncated content does not end with %q", TruncationMarker)
		}
	})

	t.Run("cut lands on a rune boundary", func(t *testing.T) {
		t.Parallel()

		s := strings.Repeat("日本語", 5000)
		got := TruncateContent(s, MaxContentLength)

		if len(got) > MaxContentLength {
			t.Errorf("len = %d, want at most %d", len(got), MaxContentLength)
		}
		if !utf8.ValidString(got) {
			t.Error("truncated content is not valid UTF-8")
		}
		if !strings.HasSuffix(got, TruncationMarker) {
			t.Errorf("truncated content does not end with %q", TruncationMarker)
		}
	})
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusExploring, "exploring"},
		{StatusCompleted, "completed"},
		{StatusTimedOut, "timed_out"},
		{StatusFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestExplorationResultTotalLinks(t *testing.T) {
	t.Parallel()

	r := NewExplorationResult("https://example.com", 2)
	if r.Status != StatusExploring {
		t.Errorf("new result status = %q, want %q", r.Status, StatusExploring)
	}

	r.Content = []PageResult{
		{URL: "https://example.com", Links: []LinkCandidate{{URL: "a"}, {URL: "b"}}},
		{URL: "https://example.com/docs", Links: []LinkCandidate{{URL: "c"}}},
	}
	if got := r.TotalLinks(); got != 3 {
		t.Errorf("TotalLinks() = %d, want 3", got)
	}
}
