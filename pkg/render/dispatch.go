// tokforge/pkg/render/dispatch.go
package render

import (
	"maps"
	"sort"
	"strings"

	"github.com/tokforge/tokforge/pkg/tokens"
)

// basePermutation returns the base permutation (spec §1.6: always index 0).
func basePermutation(ctx *RenderContext) tokens.Permutation {
	return ctx.Permutations[0]
}

// nonBasePermutations returns every permutation but the base, in the order
// ResolveAllPermutations produced them.
func nonBasePermutations(ctx *RenderContext) []tokens.Permutation {
	if len(ctx.Permutations) <= 1 {
		return nil
	}
	return ctx.Permutations[1:]
}

// permutationName builds a deterministic, sorted-by-modifier-name label for
// a permutation from its modifier selections, e.g. {"theme":"dark",
// "density":"compact"} -> "density-compact-theme-dark". A permutation with
// no selections is named "base".
func permutationName(perm tokens.Permutation) string {
	if len(perm.ModifierInputs) == 0 {
		return "base"
	}
	keys := make([]string, 0, len(perm.ModifierInputs))
	for k := range perm.ModifierInputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"-"+perm.ModifierInputs[k])
	}
	return strings.Join(parts, "-")
}

// fileNameFor resolves the output file name for perm, preferring the
// caller-supplied FileName callback over the renderer's own default:
// tokens.<ext> for the base permutation (index 0, whose selections are the
// modifier defaults) or a permutation with no selections, and
// tokens-<permutationName>.<ext> for every other permutation.
func fileNameFor(ctx *RenderContext, perm tokens.Permutation, ext string) string {
	if ctx.FileName != nil {
		return ctx.FileName(perm)
	}
	isBase := len(ctx.Permutations) > 0 && maps.Equal(perm.ModifierInputs, basePermutation(ctx).ModifierInputs)
	if len(perm.ModifierInputs) == 0 || isBase {
		return "tokens." + ext
	}
	return "tokens-" + permutationName(perm) + "." + ext
}
