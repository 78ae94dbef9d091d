// tokforge/pkg/render/css.go
package render

import (
	"github.com/tokforge/tokforge/pkg/generators"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// CSSRenderer emits CSS custom properties via the teacher's CSSGenerator,
// one GenerationContext per file per preset (spec §1.8/§5 "css").
type CSSRenderer struct {
	gen *generators.CSSGenerator
}

// NewCSSRenderer constructs a CSSRenderer.
func NewCSSRenderer() *CSSRenderer {
	return &CSSRenderer{gen: generators.NewCSSGenerator()}
}

func (r *CSSRenderer) Name() string { return "css" }

func (r *CSSRenderer) Format(ctx *RenderContext) (FileTree, error) {
	switch ctx.Preset {
	case PresetStandalone:
		return r.formatStandalone(ctx)
	case PresetModifier:
		return r.formatModifier(ctx)
	default:
		return r.formatBundle(ctx)
	}
}

// formatBundle folds every non-base permutation into the base file's
// @layer themes section, mirroring the teacher's original single-file
// build.go behavior.
func (r *CSSRenderer) formatBundle(ctx *RenderContext) (FileTree, error) {
	base := basePermutation(ctx)
	gctx := generationContext(base, ctx, true)
	out, err := r.gen.Generate(gctx)
	if err != nil {
		return nil, err
	}
	out += appendKeyframes(ctx.Keyframes)
	return FileTree{fileNameFor(ctx, base, "css"): []byte(out)}, nil
}

// formatStandalone emits one complete CSS file per permutation.
func (r *CSSRenderer) formatStandalone(ctx *RenderContext) (FileTree, error) {
	tree := make(FileTree, len(ctx.Permutations))
	for _, perm := range ctx.Permutations {
		gctx := generationContext(perm, ctx, false)
		out, err := r.gen.Generate(gctx)
		if err != nil {
			return nil, err
		}
		out += appendKeyframes(ctx.Keyframes)
		tree[fileNameFor(ctx, perm, "css")] = []byte(out)
	}
	return tree, nil
}

// formatModifier emits the base permutation as a complete file and one
// diff-only overlay file (just the custom properties that changed) per
// non-base permutation.
func (r *CSSRenderer) formatModifier(ctx *RenderContext) (FileTree, error) {
	base := basePermutation(ctx)
	baseOut, err := r.gen.Generate(generationContext(base, ctx, false))
	if err != nil {
		return nil, err
	}
	baseOut += appendKeyframes(ctx.Keyframes)
	tree := FileTree{fileNameFor(ctx, base, "css"): []byte(baseOut)}

	for _, perm := range nonBasePermutations(ctx) {
		diff := generators.GenerationContext{
			ResolvedTokens: diffValueMap(perm.Tokens, base.Tokens),
		}
		out, err := r.gen.Generate(&diff)
		if err != nil {
			return nil, err
		}
		tree[fileNameFor(ctx, perm, "css")] = []byte(out)
	}
	return tree, nil
}

// appendKeyframes renders @keyframes blocks as a standalone section, empty
// when no keyframes were extracted.
func appendKeyframes(keyframes []tokens.KeyframeDefinition) string {
	if len(keyframes) == 0 {
		return ""
	}
	return "\n" + tokens.GenerateKeyframesCSS(keyframes)
}
