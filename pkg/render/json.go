// tokforge/pkg/render/json.go
package render

import (
	"github.com/tokforge/tokforge/pkg/generators"
)

// JSONRenderer emits the structured catalog/manifest JSON via the teacher's
// CatalogGenerator (spec §4 "Catalog/manifest JSON output", §5 "json").
// Preset is mostly immaterial to a catalog file — bundle/modifier both
// produce one catalog with every non-base permutation folded in as a theme
// entry; standalone produces one catalog per permutation with no Themes
// section, since a standalone catalog has nothing to diff against.
type JSONRenderer struct{}

// NewJSONRenderer constructs a JSONRenderer.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Name() string { return "json" }

func (r *JSONRenderer) Format(ctx *RenderContext) (FileTree, error) {
	gen := generators.NewCatalogGeneratorWithOptions(generators.CatalogOptions{
		Category:         ctx.Category,
		CustomizableOnly: ctx.CustomizableOnly,
	})

	if ctx.Preset == PresetStandalone {
		tree := make(FileTree, len(ctx.Permutations))
		for _, perm := range ctx.Permutations {
			out, err := gen.GenerateWithMetadata(valueMap(perm.Tokens), ctx.Components, nil, ctx.Metadata)
			if err != nil {
				return nil, err
			}
			tree[fileNameFor(ctx, perm, "json")] = []byte(out)
		}
		return tree, nil
	}

	base := basePermutation(ctx)
	themes := make(map[string]generators.CatalogThemeInput)
	for _, perm := range nonBasePermutations(ctx) {
		themes[permutationName(perm)] = generators.CatalogThemeInput{
			ResolvedTokens: valueMap(perm.Tokens),
			DiffTokens:     diffValueMap(perm.Tokens, base.Tokens),
		}
	}

	out, err := gen.GenerateWithMetadata(valueMap(base.Tokens), ctx.Components, themes, ctx.Metadata)
	if err != nil {
		return nil, err
	}
	return FileTree{fileNameFor(ctx, base, "json"): []byte(out)}, nil
}
