// Package config loads e2e run settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thesyncim/pizzae2e/pkg/fixtures"
)

// EnvPrefix prefixes every environment variable, e.g. PIZZA_HOST_URL.
const EnvPrefix = "PIZZA"

// Config holds the settings shared by the browser tests.
type Config struct {
	HostURL    string        // Storefront base URL
	Headless   bool          // Run Chrome headless
	Timeout    time.Duration // Per-action timeout for page helpers
	SlowMotion time.Duration // Delay between browser input actions, for debugging
	BrowserBin string        // Chrome binary; empty lets Rod download one
	ConfigFile string        // File the settings were read from, if any
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		HostURL:  fixtures.DefaultHostURL,
		Headless: true,
		Timeout:  10 * time.Second,
	}
}

// Load reads PIZZA_* environment variables on top of the defaults. When
// PIZZA_CONFIG names a file (YAML, JSON or TOML) it is read first, and the
// environment wins over it.
func Load() (Config, error) {
	return LoadFs(afero.NewOsFs())
}

// LoadFs is like Load but reads the config file from fs.
func LoadFs(fs afero.Fs) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("host_url", def.HostURL)
	v.SetDefault("headless", def.Headless)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("slow_motion", def.SlowMotion)
	v.SetDefault("browser_bin", "")

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		HostURL:    strings.TrimRight(v.GetString("host_url"), "/"),
		Headless:   v.GetBool("headless"),
		Timeout:    v.GetDuration("timeout"),
		SlowMotion: v.GetDuration("slow_motion"),
		BrowserBin: v.GetString("browser_bin"),
		ConfigFile: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for obvious mistakes.
func (c Config) Validate() error {
	u, err := url.Parse(c.HostURL)
	if err != nil {
		return fmt.Errorf("host url %q: %w", c.HostURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("host url %q: scheme must be http or https", c.HostURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.SlowMotion < 0 {
		return errors.New("slow motion must not be negative")
	}
	return nil
}

// URL joins path onto the storefront base URL.
func (c Config) URL(path string) string {
	if path == "" || path == "/" {
		return c.HostURL + "/"
	}
	return c.HostURL + "/" + strings.TrimLeft(path, "/")
}
