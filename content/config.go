package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the conventional name of the loader configuration file.
const ConfigFile = "postindex.cfg"

// Config contains settings from the postindex.cfg file.
// The zero value is usable; empty fields take their defaults.
type Config struct {
	OutputExt        string            `toml:"outputext"`        // Extension of generated pages, default ".html"
	ExcerptSeparator string            `toml:"excerptseparator"` // Line ending the excerpt, default "---"
	NoExcerpt        bool              `toml:"noexcerpt"`        // Disable excerpts entirely
	BaseURL          string            `toml:"baseurl"`          // Prefix for site-absolute links in excerpts
	Locale           string            `toml:"locale"`           // Locale of display dates, default "en_US"
	Renderer         string            `toml:"renderer"`         // "blackfriday" (default) or "goldmark"
	Ignore           []string          `toml:"ignore"`           // doublestar patterns relative to the content root
	SkipHidden       bool              `toml:"skiphidden"`       // Skip files and folders starting with "."
	Expires          Duration          `toml:"expires"`          // Expires header for served listings
	Headers          map[string]string `toml:"headers"`          // Extra headers for served listings
}

// Defaults used for empty Config fields.
const (
	DefaultOutputExt        = ".html"
	DefaultExcerptSeparator = "---"
	DefaultLocale           = "en_US"
)

// ReadConfig returns configuration from the named TOML file in fsys.
// It is not an error if the file does not exist; defaults are returned.
func ReadConfig(fsys fs.FS, name string) (*Config, error) {
	var cfg Config
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg.withDefaults(), nil
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	err = toml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", name, err)
	}
	c := cfg.withDefaults()
	if err = c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// withDefaults returns a copy of cfg with empty fields filled in.
// A nil cfg yields the default configuration.
func (cfg *Config) withDefaults() *Config {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.OutputExt == "" {
		c.OutputExt = DefaultOutputExt
	}
	if c.ExcerptSeparator == "" {
		c.ExcerptSeparator = DefaultExcerptSeparator
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Renderer == "" {
		c.Renderer = RendererBlackfriday
	}
	return &c
}

// validate checks a configuration that already has defaults applied.
func (cfg *Config) validate() error {
	if !strings.HasPrefix(cfg.OutputExt, ".") {
		return fmt.Errorf("config: outputext %q must start with a dot", cfg.OutputExt)
	}
	if cfg.Renderer != RendererBlackfriday && cfg.Renderer != RendererGoldmark {
		return fmt.Errorf("config: unknown renderer %q", cfg.Renderer)
	}
	if !supportedLocale(cfg.Locale) {
		return fmt.Errorf("config: unsupported locale %q", cfg.Locale)
	}
	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("config: invalid ignore pattern %q", pat)
		}
	}
	return nil
}

// Duration is a time.Duration written as text in the config file, e.g. "10m".
// An empty value means zero.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	p, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(p)
	return nil
}
