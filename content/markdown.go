package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown source into HTML.
type Renderer interface {
	Render(src []byte) (template.HTML, error)
}

// Names of the supported renderers.
const (
	RendererBlackfriday = "blackfriday"
	RendererGoldmark    = "goldmark"
)

// newRenderer returns the renderer named by cfg. Site-absolute links
// ("/about") are prefixed with cfg.BaseURL so excerpts resolve the same
// way as full pages.
func newRenderer(cfg *Config) (Renderer, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	switch cfg.Renderer {
	case "", RendererBlackfriday:
		return blackfridayRenderer{prefix: base}, nil
	case RendererGoldmark:
		return newGoldmarkRenderer(base), nil
	}
	return nil, fmt.Errorf("newRenderer: unknown renderer %q", cfg.Renderer)
}

// blackfridayRenderer renders with the same extensions the site uses for full pages.
type blackfridayRenderer struct {
	prefix string
}

func (r blackfridayRenderer) Render(src []byte) (template.HTML, error) {
	if len(src) == 0 {
		return "", nil
	}
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions | blackfriday.Footnotes))
	doc := md.Parse(src)
	if r.prefix != "" {
		doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			if entering && (n.Type == blackfriday.Link || n.Type == blackfriday.Image) && n.NoteID == 0 {
				n.LinkData.Destination = prefixLink(r.prefix, n.LinkData.Destination)
			}
			return blackfriday.GoToNext
		})
	}
	// The HTML renderer keeps per-document state, so one is made per call.
	hr := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	var buf bytes.Buffer
	hr.RenderHeader(&buf, doc)
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return hr.RenderNode(&buf, n, entering)
	})
	hr.RenderFooter(&buf, doc)
	return template.HTML(buf.String()), nil
}

// goldmarkRenderer renders GFM with footnotes; raw HTML passes through as
// it does with blackfriday.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(prefix string) goldmarkRenderer {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}
	if prefix != "" {
		parserOptions = append(parserOptions,
			parser.WithASTTransformers(util.Prioritized(linkPrefixer{prefix: prefix}, 100)))
	}
	return goldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parserOptions...),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (r goldmarkRenderer) Render(src []byte) (template.HTML, error) {
	if len(src) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("goldmarkRenderer: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// linkPrefixer rewrites site-absolute link and image destinations.
type linkPrefixer struct {
	prefix string
}

func (p linkPrefixer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = prefixLink(p.prefix, v.Destination)
		case *ast.Image:
			v.Destination = prefixLink(p.prefix, v.Destination)
		}
		return ast.WalkContinue, nil
	})
}

// prefixLink prefixes a site-absolute destination. Relative links,
// fragments and protocol-relative "//host" links are left alone.
func prefixLink(prefix string, dest []byte) []byte {
	if len(dest) == 0 || dest[0] != '/' || (len(dest) > 1 && dest[1] == '/') {
		return dest
	}
	return append([]byte(prefix), dest...)
}
