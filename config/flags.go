package config

import (
	"flag"
	"time"

	"github.com/pkg/errors"
)

// Flags are the command-line overrides of a Config. Only flags set on the
// command line override; unset ones leave the loaded value alone.
type Flags struct {
	fs *flag.FlagSet

	path         *string
	url          *string
	delay        *time.Duration
	a, b         *float64
	logFormat    *string
	logLevel     *string
	fetchTimeout *time.Duration
	fetchRate    *float64
	fetchBreaker *string
	debugAddr    *string
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		fs:           fs,
		path:         fs.String("config", "", "YAML configuration file"),
		url:          fs.String("url", d.URL, "URL of the JSON document to fetch"),
		delay:        fs.Duration("delay", d.Delay, "delay before the sum is printed"),
		a:            fs.Float64("a", d.A, "first addend"),
		b:            fs.Float64("b", d.B, "second addend"),
		logFormat:    fs.String("log.format", d.Log.Format, "logfmt, json, logrus"),
		logLevel:     fs.String("log.level", d.Log.Level, "debug, info, warn, error"),
		fetchTimeout: fs.Duration("fetch.timeout", d.Fetch.Timeout, "per-fetch timeout, 0 for none"),
		fetchRate:    fs.Float64("fetch.rate", d.Fetch.Rate, "fetches per second, 0 for unlimited"),
		fetchBreaker: fs.String("fetch.breaker", d.Fetch.Breaker, "none, gobreaker, hystrix"),
		debugAddr:    fs.String("debug.addr", d.Debug.Addr, "address serving /metrics, empty to disable"),
	}
}

// Path is the value of -config.
func (f *Flags) Path() string { return *f.path }

// Apply overlays the flags set on the command line onto c. It must be
// called after the flag set is parsed.
func (f *Flags) Apply(c *Config) error {
	if !f.fs.Parsed() {
		return errors.New("flags not parsed")
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "url":
			c.URL = *f.url
		case "delay":
			c.Delay = *f.delay
		case "a":
			c.A = *f.a
		case "b":
			c.B = *f.b
		case "log.format":
			c.Log.Format = *f.logFormat
		case "log.level":
			c.Log.Level = *f.logLevel
		case "fetch.timeout":
			c.Fetch.Timeout = *f.fetchTimeout
		case "fetch.rate":
			c.Fetch.Rate = *f.fetchRate
		case "fetch.breaker":
			c.Fetch.Breaker = *f.fetchBreaker
		case "debug.addr":
			c.Debug.Addr = *f.debugAddr
		}
	})
	return nil
}
