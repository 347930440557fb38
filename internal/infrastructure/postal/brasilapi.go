// Package postal resolves Brazilian postal codes (CEP) to addresses.
package postal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/infrastructure/config"
)

// ErrNotFound is returned for a well-formed CEP the service does not know
var ErrNotFound = errors.New("postal code not found")

// Observer is told about every lookup: "found", "not_found" or "error"
type Observer interface {
	ObservePostalLookup(result string)
}

// Client looks up CEPs on BrasilAPI (/api/cep/v2/{cep})
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	observer   Observer
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithObserver reports lookup outcomes
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a lookup client
func New(cfg config.PostalConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup resolves an 8-digit CEP. Input with other characters is reduced to
// its digits first.
func (c *Client) Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error) {
	digits := valueobject.OnlyDigits(cep)
	if len(digits) != valueobject.CEPLength {
		return nil, fmt.Errorf("%w: CEP must have 8 digits", shared.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/cep/v2/"+digits, nil)
	if err != nil {
		return nil, fmt.Errorf("creating postal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("error")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe("not_found")
		c.logger.Debug("postal code not found", zap.String("cep", digits))
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.observe("error")
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("postal service returned %d", resp.StatusCode)
	}

	var addr valueobject.PostalAddress
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		c.observe("error")
		return nil, fmt.Errorf("decoding postal response: %w", err)
	}
	if addr.PostalCode == "" {
		addr.PostalCode = digits
	}
	c.observe("found")
	return &addr, nil
}

func (c *Client) observe(result string) {
	if c.observer != nil {
		c.observer.ObservePostalLookup(result)
	}
}
