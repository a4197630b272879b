package config

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *Config {
	c := NewConfig()
	c.Targets = []string{"https://example.com"}
	return c
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.Depth != DefaultDepth {
		t.Errorf("Depth = %d, want %d", c.Depth, DefaultDepth)
	}
	if c.Deadline != 45*time.Second {
		t.Errorf("Deadline = %s, want 45s", c.Deadline)
	}
	if c.MaxLinksPerPage != 10 {
		t.Errorf("MaxLinksPerPage = %d, want 10", c.MaxLinksPerPage)
	}
	if c.MaxChildrenPerPage != 3 {
		t.Errorf("MaxChildrenPerPage = %d, want 3", c.MaxChildrenPerPage)
	}
	if c.Sites == nil {
		t.Error("Sites = nil, want an empty overrides file")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "no targets",
			mutate:  func(c *Config) { c.Targets = nil },
			wantErr: ErrNoTargets,
		},
		{
			name:    "depth below range",
			mutate:  func(c *Config) { c.Depth = 0 },
			wantErr: ErrInvalidDepth,
		},
		{
			name:    "depth above range",
			mutate:  func(c *Config) { c.Depth = 6 },
			wantErr: ErrInvalidDepth,
		},
		{
			name: "json and markdown together",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingFormats,
		},
		{
			name:    "zero deadline",
			mutate:  func(c *Config) { c.Deadline = 0 },
			wantErr: ErrNonPositiveTimeout,
		},
		{
			name:    "negative fetch timeout",
			mutate:  func(c *Config) { c.HTTPTimeout = -time.Second },
			wantErr: ErrNonPositiveTimeout,
		},
		{
			name:    "zero fan-out",
			mutate:  func(c *Config) { c.FanOut = 0 },
			wantErr: ErrNonPositiveLimit,
		},
		{
			name:    "zero content bound",
			mutate:  func(c *Config) { c.MaxContentLength = 0 },
			wantErr: ErrNonPositiveLimit,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDatabasePath(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.DatabasePath() == "" {
		t.Error("DatabasePath() is empty, want the XDG data dir")
	}

	c.DatabaseDir = "/tmp/webexplore-test"
	if got := c.DatabasePath(); got != "/tmp/webexplore-test" {
		t.Errorf("DatabasePath() = %q, want the override", got)
	}
}
