package config

import (
	"net/url"
	"strings"
)

// SiteConfig overrides fetch behavior for one host.
type SiteConfig struct {
	// Headers are extra request headers for the host.
	Headers map[string]string `yaml:"headers"`
	// Depth overrides the exploration depth; zero keeps the global
	// value.
	Depth int `yaml:"depth"`
	// ForceRender skips the lightweight fetch for hosts that only
	// deliver content through scripts.
	ForceRender bool `yaml:"force_render"`
}

// File is the parsed .webexplore config file.
type File struct {
	// Defaults apply to every host.
	Defaults SiteConfig `yaml:"defaults"`
	// Sites maps a hostname to its overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteFor returns the effective overrides for rawURL: the defaults
// with the host's own section layered on top. Host matching is
// case-insensitive and ignores the port.
func (f *File) SiteFor(rawURL string) SiteConfig {
	merged := SiteConfig{
		Headers:     make(map[string]string, len(f.Defaults.Headers)),
		Depth:       f.Defaults.Depth,
		ForceRender: f.Defaults.ForceRender,
	}
	for k, v := range f.Defaults.Headers {
		merged.Headers[k] = v
	}

	host := hostOf(rawURL)
	if host == "" {
		return merged
	}
	for name, site := range f.Sites {
		if !strings.EqualFold(name, host) {
			continue
		}
		for k, v := range site.Headers {
			merged.Headers[k] = v
		}
		if site.Depth != 0 {
			merged.Depth = site.Depth
		}
		if site.ForceRender {
			merged.ForceRender = true
		}
		break
	}
	return merged
}

// hostOf extracts the lowercase hostname from rawURL, empty when the
// URL cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
