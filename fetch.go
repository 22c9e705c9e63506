package md2docx

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Browser-like request headers. Some image hosts reject unknown clients.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAccept    = "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"

	DefaultAcceptLanguage = "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7"
)

// FetchOptions configures NewHTTPFetcher. Empty header fields use the
// defaults above. Referer has no default and is omitted when empty.
type FetchOptions struct {
	UserAgent          string
	Referer            string
	Accept             string
	AcceptLanguage     string
	InsecureSkipVerify bool
	Timeout            time.Duration // per download; zero disables
}

// HTTPFetcher downloads remote images.
type HTTPFetcher struct {
	client *http.Client
	opts   FetchOptions
}

// NewHTTPFetcher creates an HTTPFetcher with its own transport.
func NewHTTPFetcher(opts FetchOptions) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Accept == "" {
		opts.Accept = DefaultAccept
	}
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = DefaultAcceptLanguage
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-out with --strict-tls
	}

	return &HTTPFetcher{
		client: &http.Client{Transport: transport},
		opts:   opts,
	}
}

// Insecure reports whether certificate validation is disabled.
func (f *HTTPFetcher) Insecure() bool { return f.opts.InsecureSkipVerify }

// Fetch downloads url into dst. Any final status outside 2xx is an error.
// dst is removed when the download fails part way.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dst string) (err error) {
	ctx, cancel := withTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: HTTP Error %d: %s", ErrDownload, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	out, err := os.Create(dst) // #nosec G304 -- artifact path inside the output dir
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return nil
}

func (f *HTTPFetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", f.opts.Accept)
	if f.opts.Referer != "" {
		req.Header.Set("Referer", f.opts.Referer)
	}
	req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
}
