// tokforge/pkg/render/shared.go
package render

import (
	"sort"
	"strings"

	"github.com/tokforge/tokforge/pkg/generators"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// valueMap flattens a ResolvedTokenMap down to the bare name->value shape
// the teacher's generators (and the json/js/ios/android renderers built
// here) expect — the generators package predates the ResolvedToken record
// and only ever worked with map[string]any. A preserved alias (Composer ran
// with PreserveReferences, so Value is still its authored {name} form) is
// passed through unchanged here; these formats have no native var()-style
// reference syntax, so the DTCG {name} form is the most faithful rendering.
func valueMap(tok tokens.ResolvedTokenMap) map[string]any {
	out := make(map[string]any, len(tok))
	for name, t := range tok {
		out[name] = t.Value
	}
	return out
}

// cssValueMap is valueMap's CSS/Tailwind-family counterpart: a preserved
// alias token is emitted as a var(--…) reference to its target's custom
// property name instead of the {name} DTCG syntax valueMap would leave in
// place, since scenario 5's expected output is a real CSS indirection (spec
// §3 "preserveReferences"; a semantic token referencing color.brand.primary
// renders as var(--color-brand-primary), not the hex it resolves to).
func cssValueMap(tok tokens.ResolvedTokenMap) map[string]any {
	out := make(map[string]any, len(tok))
	for name, t := range tok {
		if target, ok := tokens.AliasTarget(t.Value); ok {
			out[name] = "var(--" + cssVarName(target) + ")"
			continue
		}
		out[name] = t.Value
	}
	return out
}

// sortedNames returns a ResolvedTokenMap's names in ascending order, for
// deterministic renderer output.
func sortedNames(tok tokens.ResolvedTokenMap) []string {
	names := tok.Names()
	sort.Strings(names)
	return names
}

// generationContext builds a pkg/generators.GenerationContext for one
// permutation, the shape css.go/tailwind.go already know how to consume.
// includeThemes is true only for the bundle preset, where every non-base
// permutation is folded in as an inline theme variation.
func generationContext(perm tokens.Permutation, ctx *RenderContext, includeThemes bool) *generators.GenerationContext {
	gctx := &generators.GenerationContext{
		ResolvedTokens:   cssValueMap(perm.Tokens),
		Components:       ctx.Components,
		PropertyTokens:   ctx.PropertyTokens,
		ResponsiveTokens: ctx.ResponsiveTokens,
		Breakpoints:      ctx.Breakpoints,
	}
	if includeThemes {
		gctx.Themes = themeContextsFor(ctx)
	}
	return gctx
}

// diffValueMap returns only the entries of target that differ from base,
// keyed by name, for a modifier-preset overlay file, translating any
// preserved-alias value to its var(--…) reference form the same way
// cssValueMap does for a full permutation.
func diffValueMap(target, base tokens.ResolvedTokenMap) map[string]any {
	diff := tokens.DiffResolved(target, base)
	for name, v := range diff {
		if ref, ok := tokens.AliasTarget(v); ok {
			diff[name] = "var(--" + cssVarName(ref) + ")"
		}
	}
	return diff
}

// themeContextsFor builds the teacher's map[string]generators.ThemeContext
// for every non-base permutation, keyed by permutationName, diffed against
// base — the shape the CSS/Tailwind "bundle" preset inlines as
// @layer themes / @layer base theme variations.
func themeContextsFor(ctx *RenderContext) map[string]generators.ThemeContext {
	base := basePermutation(ctx)
	out := make(map[string]generators.ThemeContext)
	for _, perm := range nonBasePermutations(ctx) {
		name := permutationName(perm)
		out[name] = generators.ThemeContext{
			ResolvedTokens: cssValueMap(perm.Tokens),
			DiffTokens:     tokens.DiffResolved(perm.Tokens, base.Tokens),
		}
	}
	return out
}

// formatScalar renders a resolved token's value the way a non-CSS text
// renderer (json/js/ios/android) wants it: strings returned unchanged
// (callers quote them where their output needs it), everything else via
// SerializeValue's array-join / fmt.Sprintf fallback.
func formatScalar(val any) string {
	switch v := val.(type) {
	case string:
		return v
	default:
		return generators.SerializeValue(v)
	}
}

// cssVarName mirrors the teacher's dot-to-dash custom-property convention
// (css.go/tailwind.go: strings.ReplaceAll(path, ".", "-")).
func cssVarName(path string) string {
	return strings.ReplaceAll(path, ".", "-")
}

// identifierName turns a dot path into an UpperCamelCase identifier for the
// iOS/Android renderers, e.g. "color.brand.primary" -> "ColorBrandPrimary".
func identifierName(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '-' || r == '_' })
	var sb strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(seg[:1]))
		sb.WriteString(seg[1:])
	}
	return sb.String()
}

// lowerCamelName turns a dot path into lowerCamelCase, for the js renderer's
// named exports.
func lowerCamelName(path string) string {
	id := identifierName(path)
	if id == "" {
		return id
	}
	return strings.ToLower(id[:1]) + id[1:]
}
