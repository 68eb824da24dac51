package content

import (
	"fmt"
	"html/template"
	"io/fs"
)

// PostSummary is the listing view of one content file.
type PostSummary struct {
	Title   string        `json:"title,omitempty"` // Title from front matter, if any
	Link    string        `json:"link"`            // Published path, e.g. "/posts/2024/hello.html"
	Date    Date          `json:"date"`            // Normalized publication date
	Excerpt template.HTML `json:"excerpt"`         // Rendered text before the excerpt separator
}

// FeedPost is a PostSummary carrying the complete front matter, for feed generation.
type FeedPost struct {
	PostSummary
	Metadata map[string]any `json:"metadata"`
}

// summarize reads and parses the named file. Read errors are returned as
// *fs.PathError and front matter problems as *MetadataError.
func (l *Loader) summarize(name string) (*FeedPost, error) {
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	meta, body, err := parseFrontMatter(b)
	if err != nil {
		return nil, &MetadataError{Path: name, Err: err}
	}
	date, err := l.dates.format(meta["date"])
	if err != nil {
		return nil, &MetadataError{Path: name, Err: err}
	}
	excerpt, err := l.render.Render(l.excerpts.excerpt(body))
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", name, err)
	}
	return &FeedPost{
		PostSummary: PostSummary{
			Title:   titleOf(meta),
			Link:    linkFor(name, l.cfg.OutputExt),
			Date:    date,
			Excerpt: excerpt,
		},
		Metadata: meta,
	}, nil
}

// titleOf returns the title field as text; non-string values are printed.
func titleOf(meta map[string]any) string {
	switch t := meta["title"].(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
