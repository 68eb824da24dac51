package content

import (
	"bytes"
	"regexp"
)

// excerptSplitter finds the excerpt of a body. A nil splitter disables excerpts.
type excerptSplitter struct {
	re *regexp.Regexp
}

// newExcerptSplitter matches lines consisting solely of sep, ignoring surrounding blanks.
func newExcerptSplitter(sep string) *excerptSplitter {
	if sep == "" {
		return nil
	}
	return &excerptSplitter{
		re: regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(sep) + `[ \t]*\r?$`),
	}
}

// excerpt returns the body text before the first separator line.
// A body without a separator has no excerpt.
func (s *excerptSplitter) excerpt(body []byte) []byte {
	if s == nil {
		return nil
	}
	loc := s.re.FindIndex(body)
	if loc == nil {
		return nil
	}
	return bytes.TrimSpace(body[:loc[0]])
}
