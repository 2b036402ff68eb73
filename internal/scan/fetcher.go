package scan

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jsminer/jsminer/internal/config"
)

// maxAttempts bounds retries for transient remote failures. 4xx responses
// never retry.
const maxAttempts = 3

// retryBackoff is the base wait before a retry; doubled per attempt.
const retryBackoff = 500 * time.Millisecond

// Fetcher retrieves asset content for targets. One Fetcher is shared by all
// workers of a run.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewFetcher builds a Fetcher from the run options.
func NewFetcher(opts *config.Options) (*Fetcher, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConns:        opts.Concurrency,
		MaxIdleConnsPerHost: opts.Concurrency,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodySize,
	}, nil
}

// Fetch retrieves the content for t. The returned Asset always carries the
// target; on failure Err is set and the asset has no body. Failures are
// never fatal to the run.
func (f *Fetcher) Fetch(ctx context.Context, t Target) Asset {
	asset := Asset{Target: t, FetchedAt: time.Now()}

	switch t.Kind {
	case KindInline:
		asset.Body = []byte(t.Body)
	case KindFile:
		data, err := os.ReadFile(t.Address)
		if err != nil {
			asset.Err = errors.Wrap(err, "reading local file")
			return asset
		}
		asset.Body = data
	default:
		f.fetchRemote(ctx, &asset)
	}
	return asset
}

func (f *Fetcher) fetchRemote(ctx context.Context, asset *Asset) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			wait := retryBackoff << (attempt - 2)
			log.Debug().Str("url", asset.Target.Address).Int("attempt", attempt).
				Dur("backoff", wait).Msg("retrying fetch")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				asset.Err = ctx.Err()
				return
			}
		}

		status, retryable, err := f.attempt(ctx, asset)
		if err == nil {
			asset.StatusCode = status
			return
		}
		lastErr = err
		if ctx.Err() != nil {
			asset.Err = lastErr
			return
		}
		if !retryable {
			asset.Err = lastErr
			asset.StatusCode = status
			return
		}
	}

	asset.Err = errors.Wrapf(lastErr, "giving up after %d attempts", maxAttempts)
}

// attempt performs one HTTP request. retryable distinguishes transient
// failures (transport errors, 5xx) from permanent ones (4xx).
func (f *Fetcher) attempt(ctx context.Context, asset *Asset) (status int, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.Target.Address, nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return resp.StatusCode, true, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return resp.StatusCode, false, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return resp.StatusCode, true, errors.Wrap(err, "reading response body")
	}

	asset.Body = body
	asset.ContentType = resp.Header.Get("Content-Type")
	return resp.StatusCode, false, nil
}
