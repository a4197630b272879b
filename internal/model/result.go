package model

import "time"

// Status describes the terminal state of an exploration.
type Status string

const (
	// StatusExploring means the exploration is still in progress.
	StatusExploring Status = "exploring"
	// StatusCompleted means the exploration finished within its deadline.
	StatusCompleted Status = "completed"
	// StatusTimedOut means the deadline expired and the result holds the
	// pages collected up to that point.
	StatusTimedOut Status = "timed_out"
	// StatusFailed means the root page could not be explored at all.
	StatusFailed Status = "failed"
)

// String returns the status as a short lowercase word.
func (s Status) String() string {
	return string(s)
}

// ExplorationResult is the aggregate outcome of exploring one root URL
// and its same-domain neighborhood.
type ExplorationResult struct {
	// RootURL is the URL the exploration started from.
	RootURL string `json:"rootUrl"`
	// ExplorationDepth is the requested depth limit (1-indexed).
	ExplorationDepth int `json:"explorationDepth"`
	// PagesExplored counts pages successfully fetched and extracted.
	PagesExplored int `json:"pagesExplored"`
	// Content holds one PageResult per explored page. The root page
	// comes first; branch results follow in completion order.
	Content []PageResult `json:"content"`
	// Error describes a partial failure, such as a deadline expiry.
	// Empty when the exploration completed cleanly.
	Error string `json:"error,omitempty"`

	// Status is the terminal state of the run. Not serialized; reports
	// and the history archive consume it directly.
	Status Status `json:"-"`
	// StartedAt records when the exploration began.
	StartedAt time.Time `json:"-"`
	// Duration records how long the exploration took.
	Duration time.Duration `json:"-"`
}

// NewExplorationResult returns a result in the exploring state for the
// given root URL and depth limit.
func NewExplorationResult(rootURL string, depth int) *ExplorationResult {
	return &ExplorationResult{
		RootURL:          rootURL,
		ExplorationDepth: depth,
		Status:           StatusExploring,
		StartedAt:        time.Now(),
	}
}

// TotalLinks returns the number of links recorded across all pages.
func (r *ExplorationResult) TotalLinks() int {
	n := 0
	for _, p := range r.Content {
		n += len(p.Links)
	}
	return n
}
