package content

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnterminated is reported when front matter is opened but never closed.
var ErrUnterminated = errors.New("unterminated front matter")

// MetadataError reports a content file whose front matter cannot be parsed.
type MetadataError struct {
	Path string // Path of the content file
	Err  error  // Underlying parse error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s: invalid front matter: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// fmFormat identifies the syntax of a front matter block.
type fmFormat int

const (
	fmNone fmFormat = iota
	fmTOML
	fmYAML
)

var (
	tomlDelim = regexp.MustCompile(`(?m)^[ \t]*\+\+\+[ \t]*\r?$`)
	yamlDelim = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*\r?$`)
)

// extractFrontMatter splits the front matter and Markdown content.
// TOML front matter is delimited by "+++" lines and YAML front matter by "---" lines.
// When the first non-blank line is not a delimiter, there is no front matter
// and the whole input is returned as the body.
func extractFrontMatter(x []byte) (format fmFormat, fm, r []byte, err error) {
	trimmed := bytes.TrimLeft(x, " \t\r\n")
	line := trimmed
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	var delim *regexp.Regexp
	switch {
	case tomlDelim.Match(line):
		format, delim = fmTOML, tomlDelim
	case yamlDelim.Match(line):
		format, delim = fmYAML, yamlDelim
	default:
		return fmNone, nil, x, nil
	}
	rest := trimmed[len(line):]
	loc := delim.FindIndex(rest)
	if loc == nil {
		return format, nil, nil, ErrUnterminated
	}
	return format, bytes.TrimSpace(rest[:loc[0]]), bytes.TrimSpace(rest[loc[1]:]), nil
}

// parseFrontMatter splits x and decodes its front matter into a map.
// The returned map is never nil.
func parseFrontMatter(x []byte) (map[string]any, []byte, error) {
	format, fm, body, err := extractFrontMatter(x)
	if err != nil {
		return nil, nil, err
	}
	meta := make(map[string]any)
	switch format {
	case fmTOML:
		err = toml.Unmarshal(fm, &meta)
	case fmYAML:
		err = yaml.Unmarshal(fm, &meta)
	}
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		meta = make(map[string]any)
	}
	return meta, body, nil
}
