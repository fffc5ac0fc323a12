// Package browser launches Chrome through Rod for the storefront e2e tests.
// One Client is shared by a test binary; every test gets its own incognito
// page so cookies, local storage and request hijacking never leak between
// tests.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/thesyncim/pizzae2e/pkg/config"
)

// Config configures Chrome launch options.
type Config struct {
	Headless   bool          // Run in headless mode (default: true)
	SlowMotion time.Duration // Delay between input actions (default: none)
	Bin        string        // Chrome binary, empty to let Rod download one
}

// DefaultConfig returns sensible defaults for e2e testing.
func DefaultConfig() Config {
	return Config{
		Headless: true,
	}
}

// FromRunConfig maps the run settings onto launch options.
func FromRunConfig(c config.Config) Config {
	cfg := DefaultConfig()
	cfg.Headless = c.Headless
	cfg.SlowMotion = c.SlowMotion
	cfg.Bin = c.BrowserBin
	return cfg
}

// Client owns one Chrome process.
type Client struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *zap.Logger
}

// NewClient launches Chrome. The browser is configured with:
//   - No sandbox (for container compatibility)
//   - No GPU
//   - A fixed desktop window size so the storefront renders its full navbar
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", "1280,900")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if cfg.SlowMotion > 0 {
		browser = browser.SlowMotion(cfg.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	logger.Debug("chrome launched", zap.String("control_url", url), zap.Bool("headless", cfg.Headless))
	return &Client{
		browser:  browser,
		launcher: l,
		logger:   logger,
	}, nil
}

// NewPage opens a blank page in a fresh incognito context. The returned
// func closes the page and disposes of its context; call it when the test
// is done.
func (c *Client) NewPage() (*rod.Page, func() error, error) {
	if c.browser == nil {
		return nil, nil, errors.New("browser closed")
	}
	incognito, err := c.browser.Incognito()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		incognito.Close()
		return nil, nil, fmt.Errorf("failed to open page: %w", err)
	}
	c.logger.Debug("incognito page opened", zap.String("context", string(incognito.BrowserContextID)))

	closePage := func() error {
		return errors.Join(page.Close(), incognito.Close())
	}
	return page, closePage, nil
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *Client) Close() error {
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	c.launcher.Cleanup()
	return err
}
