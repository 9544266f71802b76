// Package apiclient is the authenticated HTTP client for the staff API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/session"
)

// DefaultTimeout bounds every request, including reading the body.
const DefaultTimeout = 30 * time.Second

// StatusError is returned for non-2xx responses and for envelopes with success=false.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Session    session.Store
	Logger     *zap.Logger
}

// Client attaches the stored bearer token to every request and unwraps the
// {success, data, error} envelope.
type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	timeout time.Duration
	logger  *zap.Logger
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}
	baseURL := base.String()
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL: baseURL,
		http:    opts.HTTPClient,
		session: opts.Session,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.session == nil {
		c.session = session.NewMemoryStore()
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// BaseURL returns the server URL with a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the token store.
func (c *Client) Session() session.Store { return c.session }

// Logger returns the client's logger.
func (c *Client) Logger() *zap.Logger { return c.logger }

// Do sends one request to path (relative to the base URL) and decodes the
// envelope's data into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.session.Get(ctx, session.KeyAuthToken); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if err != nil && !errors.Is(err, session.ErrNotFound) {
		return fmt.Errorf("read auth token: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := session.ClearTokens(ctx, c.session); err != nil {
			c.logger.Warn("clear tokens after 401", zap.Error(err))
		}
	}

	var env dto.RawEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			se.Code = env.Error.Code
			se.Message = env.Error.Message
		}
		return se
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		se := &StatusError{StatusCode: resp.StatusCode, Message: "request unsuccessful"}
		if env.Error != nil {
			se.Code = env.Error.Code
			se.Message = env.Error.Message
		}
		return se
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
