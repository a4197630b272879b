package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/webexplore/webexplore/internal/extract"
	"github.com/webexplore/webexplore/internal/fetch"
	"github.com/webexplore/webexplore/internal/model"
)

const (
	// MinDepth is the shallowest exploration: the root page only.
	MinDepth = 1
	// MaxDepth bounds how deep an exploration may recurse.
	MaxDepth = 5

	// DefaultMaxLinksPerPage is how many of a page's highest-scoring
	// links are kept in its result.
	DefaultMaxLinksPerPage = 10
	// DefaultMaxChildrenPerPage is how many same-domain children are
	// followed from one page.
	DefaultMaxChildrenPerPage = 3
	// DefaultFanOut is how many child fetches run concurrently under
	// one parent.
	DefaultFanOut = 3
	// DefaultDeadline is the global budget for one exploration.
	DefaultDeadline = 45 * time.Second
)

// ClampDepth forces depth into the [MinDepth, MaxDepth] range.
// Callers pass user input through here before Explore.
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// Explorer walks one root URL to a bounded depth. It is built per
// exploration; the fetcher it wraps is not shared across runs.
type Explorer struct {
	fetcher     fetch.PageFetcher
	logger      *slog.Logger
	maxLinks    int
	maxChildren int
	fanOut      int
	deadline    time.Duration
	maxContent  int
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger for branch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithMaxLinksPerPage sets how many links are kept per page result.
func WithMaxLinksPerPage(n int) Option {
	return func(e *Explorer) {
		e.maxLinks = n
	}
}

// WithMaxChildrenPerPage sets how many same-domain children are
// followed from one page.
func WithMaxChildrenPerPage(n int) Option {
	return func(e *Explorer) {
		e.maxChildren = n
	}
}

// WithFanOut sets the concurrent fetch group size.
func WithFanOut(n int) Option {
	return func(e *Explorer) {
		e.fanOut = n
	}
}

// WithDeadline sets the global exploration budget.
func WithDeadline(d time.Duration) Option {
	return func(e *Explorer) {
		e.deadline = d
	}
}

// WithMaxContentLength sets the per-page content bound in bytes.
func WithMaxContentLength(n int) Option {
	return func(e *Explorer) {
		e.maxContent = n
	}
}

// New returns an Explorer over the given fetcher with defaults
// applied.
func New(fetcher fetch.PageFetcher, opts ...Option) *Explorer {
	e := &Explorer{
		fetcher:     fetcher,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxLinks:    DefaultMaxLinksPerPage,
		maxChildren: DefaultMaxChildrenPerPage,
		fanOut:      DefaultFanOut,
		deadline:    DefaultDeadline,
		maxContent:  model.MaxContentLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// state carries the per-exploration shared structures.
type state struct {
	visited  *VisitedSet
	rootHost string
	maxDepth int
}

// Explore walks rawURL and its same-domain neighborhood up to depth
// levels. A deadline expiry yields the pages collected so far with the
// result's Error field set. The returned error is non-nil only when
// the URL is invalid or the root page itself could not be fetched.
func (e *Explorer) Explore(ctx context.Context, rawURL string, depth int) (*model.ExplorationResult, error) {
	rootURL, err := fetch.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	if depth < MinDepth {
		depth = MinDepth
	}

	result := model.NewExplorationResult(rawURL, depth)
	ctx, cancel := context.WithTimeout(ctx, e.deadline)
	defer cancel()

	st := &state{
		visited:  NewVisitedSet(),
		rootHost: strings.ToLower(rootURL.Hostname()),
		maxDepth: depth,
	}

	pages, err := e.walk(ctx, st, rawURL, MinDepth)
	result.Duration = time.Since(result.StartedAt)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			result.Status = model.StatusTimedOut
			result.Error = fmt.Sprintf("exploration deadline of %s exceeded before the root page completed", e.deadline)
			result.Content = []model.PageResult{}
			return result, nil
		}
		return nil, fmt.Errorf("explore %s: %w", rawURL, err)
	}

	result.Content = pages
	result.PagesExplored = len(pages)
	if ctx.Err() != nil {
		result.Status = model.StatusTimedOut
		result.Error = fmt.Sprintf("exploration deadline of %s exceeded; partial results returned", e.deadline)
	} else {
		result.Status = model.StatusCompleted
	}

	e.logger.Info("exploration finished",
		"root", rawURL,
		"depth", depth,
		"pages", result.PagesExplored,
		"status", result.Status,
		"duration", result.Duration)
	return result, nil
}

// walk fetches one page and recurses into its selected children. The
// returned slice holds this page first, then each child subtree in
// dispatch order within its fetch group. Child failures are logged and
// isolated; only this page's own failure propagates.
func (e *Explorer) walk(ctx context.Context, st *state, rawURL string, depth int) ([]model.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !st.visited.Claim(rawURL) {
		return nil, nil
	}

	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	pageResult, kept := e.extractPage(page)
	pages := []model.PageResult{pageResult}

	if depth >= st.maxDepth {
		return pages, nil
	}

	children := e.selectChildren(st, kept)
	for start := 0; start < len(children); start += e.fanOut {
		end := start + e.fanOut
		if end > len(children) {
			end = len(children)
		}
		group := children[start:end]
		subtrees := make([][]model.PageResult, len(group))

		var g errgroup.Group
		g.SetLimit(e.fanOut)
		for i, child := range group {
			g.Go(func() error {
				sub, err := e.walk(ctx, st, child.URL, depth+1)
				if err != nil {
					e.logger.Debug("branch failed",
						"url", child.URL, "depth", depth+1, "error", err)
					return nil
				}
				subtrees[i] = sub
				return nil
			})
		}
		// Goroutines swallow their own errors, so Wait only joins.
		_ = g.Wait()

		for _, sub := range subtrees {
			pages = append(pages, sub...)
		}
	}
	return pages, nil
}

// extractPage builds the page result and returns its kept links.
// Child selection draws only from those; a link absent from the
// result is never traversed.
func (e *Explorer) extractPage(page *fetch.Page) (model.PageResult, []model.LinkCandidate) {
	result := model.PageResult{URL: page.URL, Links: []model.LinkCandidate{}}

	base, err := url.Parse(page.FinalURL)
	if err != nil || page.FinalURL == "" {
		base, _ = url.Parse(page.URL)
	}

	doc, err := extract.NewDocument(page.HTML)
	if err != nil {
		e.logger.Debug("markup parse failed, using plain text",
			"url", page.URL, "error", err)
		result.Content = model.TruncateContent(extract.PlainText(page.HTML), e.maxContent)
		return result, nil
	}

	result.Title = doc.Title()
	text := doc.Text()
	if text == "" {
		text = extract.PlainText(page.HTML)
	}
	result.Content = model.TruncateContent(text, e.maxContent)

	candidates := make([]model.LinkCandidate, 0)
	for _, link := range doc.Links(base) {
		if extract.IsBoilerplate(link.Text) {
			continue
		}
		candidates = append(candidates, link)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Relevance > candidates[j].Relevance
	})

	kept := candidates
	if len(kept) > e.maxLinks {
		kept = kept[:e.maxLinks]
	}
	result.Links = kept
	return result, kept
}

// selectChildren picks the highest-scoring same-domain links among a
// page's kept links that have not been claimed yet, up to the per-page
// child limit. Cross-domain links stay in the page result but are
// never followed.
func (e *Explorer) selectChildren(st *state, kept []model.LinkCandidate) []model.LinkCandidate {
	var children []model.LinkCandidate
	for _, c := range kept {
		if len(children) >= e.maxChildren {
			break
		}
		u, err := url.Parse(c.URL)
		if err != nil {
			continue
		}
		if !strings.EqualFold(u.Hostname(), st.rootHost) {
			continue
		}
		if st.visited.Contains(c.URL) {
			continue
		}
		children = append(children, c)
	}
	return children
}
