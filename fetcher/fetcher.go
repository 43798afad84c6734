// Package fetcher provides HTTP fetching with optional browser rendering
// fallback and an on-disk page cache.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML        string
	FinalURL    string // URL after following redirects
	UsedBrowser bool
	FetchTime   time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	ChromePath     string // Path to Chrome binary (empty = auto-detect)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		TimeoutSeconds: 30,
		ChromePath:     "",
	}
}

// Package-level options (set via Configure)
var opts = DefaultOptions()

// Configure sets the package-level options.
func Configure(o Options) {
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	opts.ChromePath = o.ChromePath // Can be empty
}

// UserAgent returns the currently configured user agent string.
func UserAgent() string {
	return opts.UserAgent
}

// Timeout returns the currently configured timeout duration.
func Timeout() time.Duration {
	return time.Duration(opts.TimeoutSeconds) * time.Second
}

// userDataDir returns a persistent directory for Chrome user data, so
// cookies survive between fetches.
func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "outloud-chrome-profile")
}

// Simple fetches a URL using standard HTTP (fast, low bandwidth).
func Simple(url string) (*FetchResult, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	client := &http.Client{
		Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		UsedBrowser: false,
		FetchTime:   time.Since(start),
	}, nil
}

// WithBrowser fetches a URL using headless Chrome to execute JavaScript.
// Slower than Simple but handles JS-rendered content.
func WithBrowser(targetURL string) (*FetchResult, error) {
	start := time.Now()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-component-update", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserDataDir(userDataDir()),
		chromedp.Flag("headless", "new"),
	}
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	defer allocCancel()

	// Browser fetches get extra time over plain HTTP ones.
	timeout := time.Duration(opts.TimeoutSeconds) * time.Second
	if timeout < 30*time.Second {
		timeout = 45 * time.Second
	} else {
		timeout = timeout + 15*time.Second
	}
	ctx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var html string
	var finalURL string
	err := chromedp.Run(ctx,
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Wait for potential JS rendering and challenges
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var title string
			if err := chromedp.Title(&title).Do(ctx); err != nil {
				return nil
			}
			// Cloudflare challenges need extra settling time.
			if title == "Just a moment..." {
				return chromedp.Sleep(5 * time.Second).Do(ctx)
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}

	return &FetchResult{
		HTML:        html,
		FinalURL:    finalURL,
		UsedBrowser: true,
		FetchTime:   time.Since(start),
	}, nil
}

// IsBlockedResponse checks if the HTML indicates a blocked/challenged page.
func IsBlockedResponse(html string) (bool, string) {
	if strings.Contains(html, "unusual traffic from your computer") ||
		strings.Contains(html, "detected unusual traffic") {
		return true, "CAPTCHA"
	}
	if strings.Contains(html, "recaptcha") && len(html) < 10000 {
		return true, "reCAPTCHA challenge"
	}
	if strings.Contains(html, "Just a moment...") ||
		strings.Contains(html, "Checking your browser") ||
		strings.Contains(html, "cf-browser-verification") {
		return true, "Cloudflare challenge"
	}
	if strings.Contains(html, "captcha-delivery.com") || strings.Contains(html, "DataDome") {
		return true, "DataDome bot protection"
	}
	if strings.Contains(html, "perimeterx") || strings.Contains(html, "px-captcha") {
		return true, "PerimeterX bot protection"
	}
	return false, ""
}

// Smart fetches a URL using the best available method: simple HTTP first,
// browser fallback when the response looks blocked or suspiciously thin.
func Smart(targetURL string) (*FetchResult, error) {
	result, err := Simple(targetURL)
	if err == nil {
		blocked, _ := IsBlockedResponse(result.HTML)
		if !blocked && len(result.HTML) > 5000 {
			return result, nil
		}
	}

	result, err = WithBrowser(targetURL)
	if err != nil {
		return nil, err
	}

	if blocked, reason := IsBlockedResponse(result.HTML); blocked {
		return result, fmt.Errorf("blocked: %s", reason)
	}

	return result, nil
}
