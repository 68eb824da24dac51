/*
Package content loads the posts of a static site into date-sorted summaries
for listing pages and feeds.

A Loader walks a content root inside an fs.FS. Every regular file below the
root is a post, except files matching an ignore pattern and, when
SkipHidden is set, files and folders whose names start with ".". Each post is parsed into a
PostSummary holding its title, published link, publication date and a
rendered excerpt. LoadFeed returns FeedPost values that also carry the full
front matter.

Parsed posts are kept in a Cache keyed by path and modification time, so
repeated loads, such as rebuilds triggered by a file watcher, only parse
files that changed. The listing itself is rebuilt on every call and always
reflects the tree as it is at that moment.

# Front Matter

Front matter is TOML delimited by "+++" lines, or YAML delimited by "---"
lines, at the start of the file:

	+++
	title = "Hello"
	date = 2024-03-01
	+++
	This is the excerpt.
	---
	The rest of the post.

A malformed or unterminated block fails the whole load; a broken post is
never silently dropped from a listing.

The "title" field becomes the summary title. The "date" field may be a TOML
date or date-time, a YAML timestamp, an integer of Unix milliseconds, or a
string in one of the forms 2006-01-02, 2006-01-02T15:04:05,
2006-01-02 15:04:05, RFC 3339 or "January 2, 2006". Only the calendar day is
kept: it is pinned to 12:00 UTC, so the display string does not depend on
the host time zone. A date that cannot be read fails the load; a post
without a date is undated and sorts last.

# Excerpts

The excerpt is the body text before the first line consisting only of the
excerpt separator, "---" by default. A post without a separator has an empty
excerpt. Excerpts are rendered with the site's Markdown renderer, with links
starting with "/" prefixed by the configured base URL.

# Links

A link is the path of the file inside the fs.FS, with its extension replaced
by the output extension. NewDir roots the fs.FS at the parent of the content
directory, so "/content/posts/2024/hello.md" becomes
"/posts/2024/hello.html".
*/
package content

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/goodsign/monday"
)

// Loader produces post summaries for a content root.
// A Loader may be used concurrently; its only mutable state is the Cache.
type Loader struct {
	fsys     fs.FS
	root     string
	cfg      *Config
	cache    *Cache
	render   Renderer
	excerpts *excerptSplitter
	dates    dateFormatter
}

// New returns a Loader for the content below root in fsys.
// A nil cache gets a fresh one, and a nil cfg means the defaults.
// A cache may only be given to one Loader; reusing it fails with ErrCacheInUse.
func New(fsys fs.FS, root string, cache *Cache, cfg *Config) (*Loader, error) {
	root = path.Clean(root)
	if !fs.ValidPath(root) {
		return nil, &fs.PathError{Op: "open", Path: root, Err: fs.ErrInvalid}
	}
	c := cfg.withDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	r, err := newRenderer(c)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewCache()
	}
	l := &Loader{
		fsys:   fsys,
		root:   root,
		cfg:    c,
		cache:  cache,
		render: r,
		dates:  dateFormatter{locale: monday.Locale(c.Locale)},
	}
	if !c.NoExcerpt {
		l.excerpts = newExcerptSplitter(c.ExcerptSeparator)
	}
	if err := cache.claim(l); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return l, nil
}

// NewDir returns a Loader for the content directory dir on the local disk.
// Links are relative to the parent of dir, so they start with its base name.
func NewDir(dir string, cache *Cache, cfg *Config) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("NewDir: %w", err)
	}
	return New(os.DirFS(filepath.Dir(abs)), filepath.Base(abs), cache, cfg)
}

// Root returns the content root inside the loader's fs.FS.
func (l *Loader) Root() string {
	return l.root
}

// Load returns the summaries of all posts, newest first.
func (l *Loader) Load() ([]*PostSummary, error) {
	posts, err := l.load()
	if err != nil {
		return nil, err
	}
	r := make([]*PostSummary, len(posts))
	for i := range posts {
		r[i] = &posts[i].PostSummary
	}
	return r, nil
}

// LoadFeed returns all posts with their front matter, newest first.
func (l *Loader) LoadFeed() ([]*FeedPost, error) {
	return l.load()
}

// load walks the content root, reusing cached posts whose source has not
// been modified, and sorts the result.
func (l *Loader) load() ([]*FeedPost, error) {
	posts := make([]*FeedPost, 0)
	for name, err := range walk(l.fsys, l.root, l.cfg.Ignore, l.cfg.SkipHidden) {
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		fi, err := fs.Stat(l.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if e, ok := l.cache.Get(name); ok && e.ModTime.Equal(fi.ModTime()) {
			posts = append(posts, e.Post)
			continue
		}
		p, err := l.summarize(name)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		l.cache.Put(name, fi.ModTime(), p)
		posts = append(posts, p)
	}
	sortByDate(posts)
	return posts, nil
}

// sortByDate sorts posts newest first. Undated posts go last; ties keep walk order.
func sortByDate(posts []*FeedPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Date, posts[j].Date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.SortKey > b.SortKey
	})
}
