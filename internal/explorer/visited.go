package explorer

import (
	"net/url"
	"strings"
	"sync"
)

// VisitedSet tracks URLs already claimed for fetching. Claiming is a
// single atomic check-and-insert, so two branches reaching the same
// URL concurrently fetch it exactly once.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Claim marks rawURL as visited and reports whether this caller won
// the claim. A false return means another branch already owns the URL.
func (v *VisitedSet) Claim(rawURL string) bool {
	key := normalizeURL(rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.urls[key]; ok {
		return false
	}
	v.urls[key] = struct{}{}
	return true
}

// Contains reports whether rawURL has been claimed.
func (v *VisitedSet) Contains(rawURL string) bool {
	key := normalizeURL(rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.urls[key]
	return ok
}

// Len returns the number of claimed URLs.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.urls)
}

// normalizeURL canonicalizes a URL for deduplication: the fragment is
// dropped, scheme and host are lowercased, and an empty path becomes
// "/". Unparseable input is used as-is.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
