package content

import (
	"io/fs"
	"iter"
	"path"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
)

// walk returns the regular files below root in lexical order. Directories
// are descended into but never yielded. Entries matching an ignore pattern
// are skipped, as are hidden entries when skipHidden is set. A root that is
// missing or not a directory yields an *fs.PathError. An error ends the
// sequence after being yielded once.
func walk(fsys fs.FS, root string, ignore []string, skipHidden bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := fs.WalkDir(fsys, root, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if name == root {
				if !d.IsDir() {
					return &fs.PathError{Op: "readdir", Path: root, Err: syscall.ENOTDIR}
				}
				return nil
			}
			if (skipHidden && isHidden(d.Name())) || ignored(relPath(root, name), ignore) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(name, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// isHidden reports whether a path element is hidden from view.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ignored reports whether rel matches any of the doublestar patterns.
// Patterns are validated by Config, so match errors cannot occur.
func ignored(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// relPath returns name relative to root, both slash-separated fs.FS paths.
func relPath(root, name string) string {
	if root == "." {
		return name
	}
	return strings.TrimPrefix(name, root+"/")
}

// linkFor derives the published link of a content file: the file's path
// with its extension replaced by ext, rooted at "/".
func linkFor(name, ext string) string {
	return "/" + strings.TrimSuffix(name, path.Ext(name)) + ext
}
