package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/argwheel/pkg/buildinfo"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/manifest"
)

const (
	// DefaultAttempts is how often a request is tried before giving up.
	DefaultAttempts = 3

	// DefaultDelay is the wait before the first retry.
	DefaultDelay = 500 * time.Millisecond

	// DefaultMaxBytes bounds a response body.
	DefaultMaxBytes = 32 << 20
)

// Client fetches remote datasets.
type Client struct {
	HTTP     *http.Client
	Attempts int
	Delay    time.Duration
	MaxBytes int64
}

// NewClient returns a client with a 30 second request timeout and the
// default retry policy.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
		MaxBytes: DefaultMaxBytes,
	}
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveURL joins a dataset name onto a host base URL. The base is
// treated as a directory whether or not it ends in a slash.
func ResolveURL(base, name string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(name)
}

// Get fetches rawURL. A 404 is DATASET_NOT_FOUND, other 4xx responses are
// INVALID_INPUT, and a canceled context is CANCELED.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsURL(rawURL) {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not an http(s) url: %q", rawURL)
	}

	var body []byte
	err := Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.get(ctx, rawURL)
		return err
	})
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "fetch %s", rawURL)
	}
	if errors.GetCode(err) != "" {
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", rawURL)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "argwheel/"+buildinfo.Version)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "%s not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("%s: %s", rawURL, resp.Status)}
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %s", rawURL, resp.Status)
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read %s: %w", rawURL, err)}
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", rawURL, limit)
	}
	return data, nil
}

// Manifest fetches and parses the manifest.json of a dataset host.
func (c *Client) Manifest(ctx context.Context, base string) ([]string, error) {
	data, err := c.Get(ctx, ResolveURL(base, manifest.FileName))
	if err != nil {
		return nil, err
	}
	return manifest.Parse(data)
}
