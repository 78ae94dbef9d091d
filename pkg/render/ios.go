// tokforge/pkg/render/ios.go
package render

import (
	"fmt"
	"strings"

	"github.com/tokforge/tokforge/pkg/colors"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// IOSRenderer emits a Swift enum of static constants (UIColor for color
// tokens, CGFloat for dimension/number tokens, String for everything else),
// one file per permutation — a native-platform renderer has no meaningful
// "inline overlay", so every preset behaves like standalone (spec §5 "ios").
type IOSRenderer struct{}

// NewIOSRenderer constructs an IOSRenderer.
func NewIOSRenderer() *IOSRenderer { return &IOSRenderer{} }

func (r *IOSRenderer) Name() string { return "ios" }

func (r *IOSRenderer) Format(ctx *RenderContext) (FileTree, error) {
	tree := make(FileTree, len(ctx.Permutations))
	for _, perm := range ctx.Permutations {
		enumName := "DesignTokens"
		if len(perm.ModifierInputs) > 0 {
			enumName = "DesignTokens" + strings.Title(strings.ReplaceAll(permutationName(perm), "-", ""))
		}

		var sb strings.Builder
		sb.WriteString("import UIKit\n\n")
		sb.WriteString(fmt.Sprintf("public enum %s {\n", enumName))
		for _, name := range sortedNames(perm.Tokens) {
			tok := perm.Tokens[name]
			sb.WriteString(fmt.Sprintf("    public static let %s = %s\n", lowerCamelName(name), swiftLiteral(tok)))
		}
		sb.WriteString("}\n")

		tree[fileNameFor(ctx, perm, "swift")] = []byte(sb.String())
	}
	return tree, nil
}

// swiftLiteral renders a resolved token as a Swift expression typed to its
// $type: UIColor(red:green:blue:alpha:) for colors, a CGFloat(...) value for
// dimensions/numbers, a quoted String literal otherwise.
func swiftLiteral(tok *tokens.ResolvedToken) string {
	if tok.Type == "color" {
		if c, ok := parseColorValue(tok.Value); ok {
			return fmt.Sprintf("UIColor(red: %.4f, green: %.4f, blue: %.4f, alpha: 1.0)", c.R, c.G, c.B)
		}
	}
	if tok.Type == "dimension" {
		if s, ok := tok.Value.(string); ok {
			if dim, err := tokens.ParseDimension(s); err == nil {
				return fmt.Sprintf("CGFloat(%v)", dim.Value)
			}
		}
	}
	if tok.Type == "number" {
		switch v := tok.Value.(type) {
		case float64, int:
			return fmt.Sprintf("CGFloat(%v)", v)
		}
	}
	if s, ok := tok.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q", formatScalar(tok.Value))
}

func parseColorValue(val any) (colors.Color, bool) {
	switch v := val.(type) {
	case string:
		c, err := colors.Parse(v)
		return c, err == nil
	case map[string]any:
		c, err := colors.ParseObject(v)
		return c, err == nil
	default:
		return colors.Color{}, false
	}
}
