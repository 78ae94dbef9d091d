// tokforge/pkg/lint/util.go
package lint

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// aliasRefPattern matches a single {name} alias reference inside a resolved
// token's original (pre-substitution) value string.
var aliasRefPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// extractReferences returns every {name} alias reference found in value,
// in order of appearance.
func extractReferences(value string) []string {
	matches := aliasRefPattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// matchesGlob reports whether name matches a doublestar glob pattern
// (e.g. "color.**", "spacing.{sm,md,lg}"), treating an invalid pattern as a
// non-match rather than panicking.
func matchesGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
