// tokforge/pkg/render/tailwind.go
package render

import (
	"github.com/tokforge/tokforge/pkg/generators"
)

// TailwindRenderer emits a Tailwind v4 @theme block via the teacher's
// TailwindGenerator (spec §1.8/§5 "tailwind").
type TailwindRenderer struct {
	gen *generators.TailwindGenerator
}

// NewTailwindRenderer constructs a TailwindRenderer.
func NewTailwindRenderer() *TailwindRenderer {
	return &TailwindRenderer{gen: generators.NewTailwindGenerator()}
}

func (r *TailwindRenderer) Name() string { return "tailwind" }

func (r *TailwindRenderer) Format(ctx *RenderContext) (FileTree, error) {
	switch ctx.Preset {
	case PresetStandalone:
		return r.formatStandalone(ctx)
	case PresetModifier:
		return r.formatModifier(ctx)
	default:
		return r.formatBundle(ctx)
	}
}

func (r *TailwindRenderer) formatBundle(ctx *RenderContext) (FileTree, error) {
	base := basePermutation(ctx)
	out, err := r.gen.Generate(generationContext(base, ctx, true))
	if err != nil {
		return nil, err
	}
	return FileTree{fileNameFor(ctx, base, "css"): []byte(out)}, nil
}

func (r *TailwindRenderer) formatStandalone(ctx *RenderContext) (FileTree, error) {
	tree := make(FileTree, len(ctx.Permutations))
	for _, perm := range ctx.Permutations {
		out, err := r.gen.Generate(generationContext(perm, ctx, false))
		if err != nil {
			return nil, err
		}
		tree[fileNameFor(ctx, perm, "css")] = []byte(out)
	}
	return tree, nil
}

func (r *TailwindRenderer) formatModifier(ctx *RenderContext) (FileTree, error) {
	base := basePermutation(ctx)
	baseOut, err := r.gen.Generate(generationContext(base, ctx, false))
	if err != nil {
		return nil, err
	}
	tree := FileTree{fileNameFor(ctx, base, "css"): []byte(baseOut)}

	for _, perm := range nonBasePermutations(ctx) {
		out, err := r.gen.GenerateFromResolved(diffValueMap(perm.Tokens, base.Tokens))
		if err != nil {
			return nil, err
		}
		tree[fileNameFor(ctx, perm, "css")] = []byte(out)
	}
	return tree, nil
}
