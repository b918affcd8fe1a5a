package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"

	"github.com/use-agent/dinnermenu/config"
	"github.com/use-agent/dinnermenu/models"
)

// Fetcher downloads a page. Implementations must honour ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// Result is the output of a successful fetch.
type Result struct {
	Body        []byte
	StatusCode  int
	FinalURL    string
	ContentType string
}

const maxRedirects = 10

// HTTPFetcher performs a single GET with browser-like headers and a hard
// deadline. Errors are returned as *models.Error with code FETCH_FAILED or
// FETCH_TIMEOUT.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	maxBody   int64
}

// NewHTTPFetcher builds a fetcher from cfg. When cfg.TLSFingerprint is set,
// HTTPS connections present a Chrome ClientHello.
func NewHTTPFetcher(cfg config.FetchConfig) *HTTPFetcher {
	return newHTTPFetcher(cfg, nil)
}

// newHTTPFetcher lets tests supply the fingerprinted dialer's TLS settings.
func newHTTPFetcher(cfg config.FetchConfig, tlsBase *utls.Config) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
		TLSHandshakeTimeout: cfg.Timeout,
	}
	if cfg.TLSFingerprint {
		transport.DialTLSContext = newChromeDialer(cfg.Timeout, tlsBase).DialTLSContext
		transport.ForceAttemptHTTP2 = false
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 5 << 20
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: ua,
		timeout:   cfg.Timeout,
		maxBody:   maxBody,
	}
}

// Fetch retrieves targetURL. The configured timeout covers connect, headers
// and body read; on expiry the call fails without returning any markup.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewFetchError(0, "", fmt.Errorf("fetch: build request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("fetch: non-2xx response", "url", targetURL, "status", resp.StatusCode)
		return nil, models.NewFetchError(
			resp.StatusCode,
			fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
			nil,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, f.classify(ctx, fmt.Errorf("fetch: read body: %w", err))
	}
	if int64(len(body)) > f.maxBody {
		slog.Warn("fetch: body truncated", "url", targetURL, "limit", f.maxBody)
		body = body[:f.maxBody]
	}

	return &Result{
		Body:        body,
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// classify maps a transport error onto FETCH_TIMEOUT or FETCH_FAILED.
func (f *HTTPFetcher) classify(ctx context.Context, err error) *models.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return models.NewFetchTimeoutError(fmt.Sprintf("timeout of %s exceeded", f.timeout), err)
	}
	return models.NewFetchError(0, err.Error(), err)
}
