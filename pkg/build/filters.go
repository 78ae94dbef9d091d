// tokforge/pkg/build/filters.go
package build

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// ByType keeps only tokens whose $type matches one of types.
func ByType(types ...string) Filter {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return func(tok *tokens.ResolvedToken) bool {
		return set[tok.Type]
	}
}

// ByPath keeps only tokens whose dot-path matches a doublestar glob, e.g.
// "color.**" or "spacing.{sm,md,lg}". An invalid pattern matches nothing
// rather than panicking, since filters run deep inside a build.
func ByPath(pattern string) Filter {
	return func(tok *tokens.ResolvedToken) bool {
		ok, err := doublestar.Match(pattern, tok.Name)
		return err == nil && ok
	}
}

// IsAlias keeps only tokens whose original (pre-alias-substitution) value
// contained one or more {name} references.
func IsAlias(tok *tokens.ResolvedToken) bool {
	return tok.IsAlias
}

// IsBase keeps only tokens last contributed by a Set entry in
// resolutionOrder, i.e. tokens a modifier context did not override.
func IsBase(tok *tokens.ResolvedToken) bool {
	return tok.SourceModifier == ""
}

// Not inverts a filter.
func Not(f Filter) Filter {
	return func(tok *tokens.ResolvedToken) bool { return !f(tok) }
}
