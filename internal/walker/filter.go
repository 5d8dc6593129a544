package walker

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs lists directory names Walk never enters: version control
// metadata, dependency trees and static site generator caches. Keys are
// lower case.
var skippedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"node_modules":  true,
	"vendor":        true,
	".sass-cache":   true,
	".jekyll-cache": true,
	".docusaurus":   true,
}

// SkipDir reports whether Walk leaves a directory called name untouched.
func SkipDir(name string) bool {
	return skippedDirs[strings.ToLower(name)]
}

// ValidatePatterns returns an error wrapping doublestar.ErrBadPattern for the
// first malformed glob in patterns.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return fmt.Errorf("%w: %q", doublestar.ErrBadPattern, p)
		}
	}
	return nil
}

// MatchesInclude reports whether relPath is selected by patterns. No
// patterns selects every page.
func MatchesInclude(relPath string, patterns []string) bool {
	return len(patterns) == 0 || matchesAny(relPath, patterns)
}

// MatchesExclude reports whether relPath is dropped by patterns.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && matchesAny(relPath, patterns)
}

// matchesAny matches the slash-separated page path against each glob. A
// pattern without a slash, like "404.html", also matches the base name at
// any depth.
func matchesAny(relPath string, patterns []string) bool {
	page := filepath.ToSlash(relPath)
	base := path.Base(page)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if doublestar.MatchUnvalidated(p, page) {
			return true
		}
		if !strings.Contains(p, "/") && doublestar.MatchUnvalidated(p, base) {
			return true
		}
	}
	return false
}
