// Package opener opens external links in the user's default browser.
package opener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrNotStarted is returned when a URL is opened before the window exists.
var ErrNotStarted = errors.New("opener service not started")

// Schemes the opener will hand to the system browser.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Package-level hooks for testing. In production, these use the real implementations.
var (
	browserOpenURL = runtime.BrowserOpenURL
)

// Service opens URLs through the Wails runtime.
type Service struct {
	ctx context.Context
}

// New creates an opener. It is usable after Start.
func New() *Service {
	return &Service{}
}

func (s *Service) Name() string { return "opener" }

// Start stores the Wails runtime context.
func (s *Service) Start(ctx context.Context) error {
	s.ctx = ctx
	return nil
}

func (s *Service) Stop(context.Context) error {
	s.ctx = nil
	return nil
}

// Validate checks that raw is an absolute URL with an allowed scheme.
func Validate(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if !allowedSchemes[scheme] {
		return nil, fmt.Errorf("refusing to open url with scheme %q", u.Scheme)
	}
	if scheme != "mailto" && u.Host == "" {
		return nil, fmt.Errorf("invalid url: missing host")
	}
	return u, nil
}

// OpenURL opens raw in the default browser.
func (s *Service) OpenURL(raw string) error {
	u, err := Validate(raw)
	if err != nil {
		return err
	}
	if s.ctx == nil {
		return ErrNotStarted
	}
	browserOpenURL(s.ctx, u.String())
	return nil
}
