// Package config loads kitrun's configuration. Values come from defaults,
// then an optional YAML file, then KITRUN_* environment variables, then
// command-line flags, each layer overriding the one before.
package config

import (
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
	"github.com/kitrun/kitrun/script"
)

// Circuit breakers the fetch path can be wrapped in.
const (
	BreakerNone      = "none"
	BreakerGobreaker = "gobreaker"
	BreakerHystrix   = "hystrix"
)

// Environment variables read by LoadEnv.
const (
	EnvURL       = "KITRUN_URL"
	EnvDelay     = "KITRUN_DELAY"
	EnvLogLevel  = "KITRUN_LOG_LEVEL"
	EnvDebugAddr = "KITRUN_DEBUG_ADDR"
)

// ErrInvalid is the cause of every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration of a kitrun process.
type Config struct {
	URL string `yaml:"url"`

	// Delay before the sum is printed. Zero selects script.DefaultDelay.
	Delay time.Duration `yaml:"delay"`
	A     float64       `yaml:"a"`
	B     float64       `yaml:"b"`

	Log   LogConfig   `yaml:"log"`
	Fetch FetchConfig `yaml:"fetch"`
	Debug DebugConfig `yaml:"debug"`
}

// LogConfig selects the log encoding and the minimum level.
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// FetchConfig tunes the network path.
type FetchConfig struct {
	// Timeout bounds each fetch. Zero leaves it unbounded.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent replaces Go's default User-Agent header when set.
	UserAgent string `yaml:"user_agent"`

	// Rate is the maximum number of fetches per second. Zero disables
	// limiting.
	Rate    float64 `yaml:"rate"`
	Breaker string  `yaml:"breaker"`
}

// DebugConfig configures the instrumentation listener.
type DebugConfig struct {
	// Addr serves /metrics when set.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		URL:   script.DefaultURL,
		Delay: script.DefaultDelay,
		A:     script.DefaultA,
		B:     script.DefaultB,
		Log: LogConfig{
			Format: log.FormatLogfmt,
			Level:  "info",
		},
		Fetch: FetchConfig{
			Breaker: BreakerNone,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path is
// not empty, and then with the environment. The result is not validated.
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := c.LoadEnv(lookupEnv); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile overlays the YAML file at path. Unknown keys are rejected; keys
// absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrapf(err, "decode config %s", path)
	}
	return nil
}

// LoadEnv overlays the KITRUN_* variables found by lookupEnv. A nil
// lookupEnv reads the process environment.
func (c *Config) LoadEnv(lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if v, ok := lookupEnv(EnvURL); ok {
		c.URL = v
	}
	if v, ok := lookupEnv(EnvDelay); ok {
		d, err := parseDelay(v)
		if err != nil {
			return errors.Wrap(err, EnvDelay)
		}
		c.Delay = d
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookupEnv(EnvDebugAddr); ok {
		c.Debug.Addr = v
	}
	return nil
}

// parseDelay accepts a Go duration or a bare number of milliseconds.
func parseDelay(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

// Validate reports the first problem with c, wrapping ErrInvalid.
func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrapf(ErrInvalid, "url %q: scheme must be http or https", c.URL)
	}
	if u.Host == "" {
		return errors.Wrapf(ErrInvalid, "url %q: missing host", c.URL)
	}
	if c.Delay < 0 {
		return errors.Wrapf(ErrInvalid, "delay %v is negative", c.Delay)
	}
	switch c.Log.Format {
	case log.FormatLogfmt, log.FormatJSON, log.FormatLogrus:
	default:
		return errors.Wrapf(ErrInvalid, "log format %q", c.Log.Format)
	}
	if _, err := level.Parse(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log level %q", c.Log.Level)
	}
	if c.Fetch.Timeout < 0 {
		return errors.Wrapf(ErrInvalid, "fetch timeout %v is negative", c.Fetch.Timeout)
	}
	if c.Fetch.Rate < 0 {
		return errors.Wrapf(ErrInvalid, "fetch rate %v is negative", c.Fetch.Rate)
	}
	switch c.Fetch.Breaker {
	case BreakerNone, BreakerGobreaker, BreakerHystrix:
	default:
		return errors.Wrapf(ErrInvalid, "fetch breaker %q", c.Fetch.Breaker)
	}
	return nil
}

// ScriptOptions returns the program parameters c describes.
func (c Config) ScriptOptions() script.Options {
	a, b := c.A, c.B
	return script.Options{URL: c.URL, Delay: c.Delay, A: &a, B: &b}
}
