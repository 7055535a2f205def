package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = "PEAKYDOCK_LOG_LEVEL"
	EnvLogFormat     = "PEAKYDOCK_LOG_FORMAT"
	EnvLogSink       = "PEAKYDOCK_LOG_SINK"
	EnvLogFile       = "PEAKYDOCK_LOG_FILE"
	EnvLogAddSource  = "PEAKYDOCK_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "PEAKYDOCK_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "PEAKYDOCK_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "PEAKYDOCK_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "PEAKYDOCK_LOG_COMPRESS"
)

// Config is the logging section of the config file. Nil fields fall back to
// the mode defaults.
type Config struct {
	Level     *string `yaml:"level,omitempty" toml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty" toml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty" toml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty" toml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty" toml:"add_source,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty" toml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty" toml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty" toml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty" toml:"compress,omitempty"`
}

func DefaultConfig(mode Mode) Config {
	level, sink := "error", SinkStderr
	if mode == ModeTUI {
		level, sink = "info", SinkFile
	}
	return Config{
		Level:      ptr(level),
		Format:     ptr(string(FormatText)),
		Sink:       ptr(string(sink)),
		AddSource:  ptr(false),
		MaxSizeMB:  ptr(10),
		MaxBackups: ptr(3),
		MaxAgeDays: ptr(14),
		Compress:   ptr(true),
	}
}

func ptr[T any](v T) *T { return &v }

// Merge returns c with every field set in override replaced.
func (c Config) Merge(override Config) Config {
	pick := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	pick(&c.Level, override.Level)
	pick(&c.Format, override.Format)
	pick(&c.Sink, override.Sink)
	pick(&c.File, override.File)
	if override.AddSource != nil {
		c.AddSource = override.AddSource
	}
	if override.MaxSizeMB != nil {
		c.MaxSizeMB = override.MaxSizeMB
	}
	if override.MaxBackups != nil {
		c.MaxBackups = override.MaxBackups
	}
	if override.MaxAgeDays != nil {
		c.MaxAgeDays = override.MaxAgeDays
	}
	if override.Compress != nil {
		c.Compress = override.Compress
	}
	return c
}

// WithEnv applies PEAKYDOCK_LOG_* overrides. Unparsable numbers are ignored.
func (c Config) WithEnv() Config {
	lookup := func(env string) (string, bool) {
		v := strings.TrimSpace(os.Getenv(env))
		return v, v != ""
	}
	for env, dst := range map[string]**string{
		EnvLogLevel:  &c.Level,
		EnvLogFormat: &c.Format,
		EnvLogSink:   &c.Sink,
		EnvLogFile:   &c.File,
	} {
		if v, ok := lookup(env); ok {
			*dst = &v
		}
	}
	for env, dst := range map[string]**bool{
		EnvLogAddSource: &c.AddSource,
		EnvLogCompress:  &c.Compress,
	} {
		if v, ok := lookup(env); ok {
			*dst = ptr(!isDisabledString(v))
		}
	}
	for env, dst := range map[string]**int{
		EnvLogMaxSizeMB:  &c.MaxSizeMB,
		EnvLogMaxBackups: &c.MaxBackups,
		EnvLogMaxAgeDays: &c.MaxAgeDays,
	} {
		if v, ok := lookup(env); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = &n
			}
		}
	}
	return c
}

// Normalize lowercases enum fields, drops blank strings, floors negative
// rotation limits at zero and validates the result.
func (c Config) Normalize() (Config, error) {
	lower := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	c.Level = lower(c.Level)
	c.Format = lower(c.Format)
	c.Sink = lower(c.Sink)
	if c.File != nil {
		if v := strings.TrimSpace(*c.File); v != "" {
			c.File = &v
		} else {
			c.File = nil
		}
	}
	for _, n := range []**int{&c.MaxSizeMB, &c.MaxBackups, &c.MaxAgeDays} {
		if *n != nil && **n < 0 {
			*n = ptr(0)
		}
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging.level: invalid %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging.format: invalid %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging.sink: invalid %q", *c.Sink)
		}
	}
	return nil
}

func isDisabledString(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return true
	default:
		return false
	}
}
