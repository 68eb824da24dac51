package content

import (
	"errors"
	"testing"
)

func TestExtractFrontMatter(t *testing.T) {
	var (
		tests = []string{
			``,
			`
		+++
		x = 2
		+++`,
			` ++++++ `,
			`  +++
		 x = "+++"
		 +++
		 hello`,
			`---
title: Hi
---
body`,
			`no front matter
+++
here`,
		}
		expect = []struct {
			format   fmFormat
			fm, body string
		}{
			{fmNone, ``, ``},
			{fmTOML, `x = 2`, ``},
			{fmNone, ``, ` ++++++ `},
			{fmTOML, `x = "+++"`, `hello`},
			{fmYAML, `title: Hi`, `body`},
			{fmNone, ``, "no front matter\n+++\nhere"},
		}
	)
	for i := range tests {
		format, fm, r, err := extractFrontMatter([]byte(tests[i]))
		if err != nil {
			t.Errorf("%d: unexpected error %v", i, err)
			continue
		}
		if format != expect[i].format || string(fm) != expect[i].fm || string(r) != expect[i].body {
			t.Errorf("%d: Expected %#v but got %#v", i, expect[i], []any{format, string(fm), string(r)})
		}
	}
}

func TestExtractFrontMatterUnterminated(t *testing.T) {
	for _, s := range []string{"+++\ntitle = 'x'\n", "---\ntitle: x\nbody"} {
		_, _, _, err := extractFrontMatter([]byte(s))
		if !errors.Is(err, ErrUnterminated) {
			t.Errorf("%q: expected ErrUnterminated, got %v", s, err)
		}
	}
}

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := parseFrontMatter([]byte("+++\ntitle = \"Hello\"\ntags = [\"a\", \"b\"]\n+++\nText"))
	if err != nil {
		t.Fatal(err)
	}
	if meta["title"] != "Hello" {
		t.Errorf("title = %#v", meta["title"])
	}
	if tags, ok := meta["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %#v", meta["tags"])
	}
	if string(body) != "Text" {
		t.Errorf("body = %q", body)
	}

	meta, _, err = parseFrontMatter([]byte("---\n---\nText"))
	if err != nil {
		t.Fatal(err)
	}
	if meta == nil || len(meta) != 0 {
		t.Errorf("expected empty metadata, got %#v", meta)
	}

	for _, s := range []string{
		"+++\ntitle = \n+++\n",
		"---\ntitle: [unclosed\n---\n",
		"---\n- a list\n---\n",
	} {
		if _, _, err := parseFrontMatter([]byte(s)); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}
