package downloader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anisan-cli/anicat/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Headless renders pages in a headless browser for sites that require script execution.
// There is a single browser instance and only one page loads at a time.
type Headless struct {
	mu       sync.Mutex
	bin      string
	dataDir  string
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// HeadlessOption configures a Headless downloader.
type HeadlessOption func(*Headless)

// WithBrowserBin uses the browser binary at path instead of a managed download.
func WithBrowserBin(path string) HeadlessOption {
	return func(h *Headless) {
		h.bin = path
	}
}

// WithUserDataDir sets the browser profile directory.
func WithUserDataDir(dir string) HeadlessOption {
	return func(h *Headless) {
		h.dataDir = dir
	}
}

// WithPageTimeout bounds how long a single page may take to load.
func WithPageTimeout(d time.Duration) HeadlessOption {
	return func(h *Headless) {
		h.timeout = d
	}
}

// NewHeadless returns a downloader that launches its browser lazily on first use.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{timeout: time.Minute}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Download loads url in the browser and returns the rendered HTML.
func (h *Headless) Download(ctx context.Context, url string) (string, error) {
	url, err := validate(url)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	browser, err := h.connect()
	if err != nil {
		return "", err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page %s: %w", url, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.WithField("url", url).Warnf("close page: %v", err)
		}
	}()

	if err := page.Timeout(h.timeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("load page %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page %s: %w", url, err)
	}

	return html, nil
}

// connect must be called with h.mu held.
func (h *Headless) connect() (*rod.Browser, error) {
	if h.browser != nil {
		return h.browser, nil
	}

	l := launcher.New().Headless(true)
	if h.bin != "" {
		l = l.Bin(h.bin)
	}
	if h.dataDir != "" {
		l = l.UserDataDir(h.dataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	log.Info("headless browser started")
	h.launcher, h.browser = l, browser
	return browser, nil
}

// Close shuts the browser down. The downloader can be used again afterwards.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser == nil {
		return nil
	}

	err := h.browser.Close()
	h.launcher.Cleanup()
	h.browser, h.launcher = nil, nil
	return err
}
