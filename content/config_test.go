package content

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestReadConfig(t *testing.T) {
	fsys := fstest.MapFS{
		ConfigFile: {Data: []byte(`
outputext = ".htm"
baseurl = "https://example.com"
renderer = "goldmark"
ignore = ["drafts/**"]
skiphidden = true
expires = "5m"

[headers]
X-Frame-Options = "DENY"
`)},
	}
	cfg, err := ReadConfig(fsys, ConfigFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputExt != ".htm" || cfg.BaseURL != "https://example.com" || cfg.Renderer != RendererGoldmark {
		t.Errorf("unexpected config %#v", cfg)
	}
	if cfg.ExcerptSeparator != DefaultExcerptSeparator || cfg.Locale != DefaultLocale {
		t.Errorf("defaults not applied: %#v", cfg)
	}
	if !cfg.SkipHidden || len(cfg.Ignore) != 1 {
		t.Errorf("walk settings = %v, %v", cfg.SkipHidden, cfg.Ignore)
	}
	if time.Duration(cfg.Expires) != 5*time.Minute {
		t.Errorf("expires = %s", cfg.Expires)
	}
	if cfg.Headers["X-Frame-Options"] != "DENY" {
		t.Errorf("headers = %v", cfg.Headers)
	}
}

func TestReadConfigMissing(t *testing.T) {
	cfg, err := ReadConfig(fstest.MapFS{}, ConfigFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputExt != DefaultOutputExt || cfg.Renderer != RendererBlackfriday {
		t.Errorf("expected defaults, got %#v", cfg)
	}
}

func TestReadConfigInvalid(t *testing.T) {
	tests := []string{
		`outputext = "html"`,
		`renderer = "pandoc"`,
		`locale = "xx_YY"`,
		`ignore = ["[unclosed"]`,
		`expires = "soon"`,
		`outputext = `,
	}
	for _, s := range tests {
		fsys := fstest.MapFS{ConfigFile: {Data: []byte(s)}}
		if _, err := ReadConfig(fsys, ConfigFile); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}
