// tokforge/pkg/render/android.go
package render

import (
	"fmt"
	"strings"

	"github.com/tokforge/tokforge/pkg/tokens"
)

// AndroidRenderer emits a Kotlin object of constants (Color(...) for color
// tokens, Float for dimension/number tokens, String otherwise), one file per
// permutation, the same standalone-only shape as IOSRenderer (spec §5
// "android").
type AndroidRenderer struct{}

// NewAndroidRenderer constructs an AndroidRenderer.
func NewAndroidRenderer() *AndroidRenderer { return &AndroidRenderer{} }

func (r *AndroidRenderer) Name() string { return "android" }

func (r *AndroidRenderer) Format(ctx *RenderContext) (FileTree, error) {
	tree := make(FileTree, len(ctx.Permutations))
	for _, perm := range ctx.Permutations {
		objectName := "DesignTokens"
		if len(perm.ModifierInputs) > 0 {
			objectName = "DesignTokens" + strings.Title(strings.ReplaceAll(permutationName(perm), "-", ""))
		}

		var sb strings.Builder
		sb.WriteString("package tokforge.tokens\n\n")
		sb.WriteString("import androidx.compose.ui.graphics.Color\n\n")
		sb.WriteString(fmt.Sprintf("object %s {\n", objectName))
		for _, name := range sortedNames(perm.Tokens) {
			tok := perm.Tokens[name]
			sb.WriteString(fmt.Sprintf("    val %s = %s\n", lowerCamelName(name), kotlinLiteral(tok)))
		}
		sb.WriteString("}\n")

		tree[fileNameFor(ctx, perm, "kt")] = []byte(sb.String())
	}
	return tree, nil
}

// kotlinLiteral renders a resolved token as a Kotlin expression typed to its
// $type: Color(0xAARRGGBB) for colors, a Float literal for
// dimensions/numbers, a quoted String literal otherwise.
func kotlinLiteral(tok *tokens.ResolvedToken) string {
	if tok.Type == "color" {
		if c, ok := parseColorValue(tok.Value); ok {
			r, g, b := c.RGB255()
			return fmt.Sprintf("Color(0xFF%02X%02X%02X)", r, g, b)
		}
	}
	if tok.Type == "dimension" {
		if s, ok := tok.Value.(string); ok {
			if dim, err := tokens.ParseDimension(s); err == nil {
				return fmt.Sprintf("%vf", dim.Value)
			}
		}
	}
	if tok.Type == "number" {
		switch v := tok.Value.(type) {
		case float64, int:
			return fmt.Sprintf("%vf", v)
		}
	}
	if s, ok := tok.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q", formatScalar(tok.Value))
}
