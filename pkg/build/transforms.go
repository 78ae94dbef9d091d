// tokforge/pkg/build/transforms.go
package build

import (
	"strings"

	"github.com/tokforge/tokforge/pkg/colors"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// NameKebabCase rewrites a token's Name to kebab-case, splitting camelCase
// boundaries in addition to the teacher's dot-to-dash convention (css.go's
// strings.ReplaceAll(path, ".", "-")), so a JSON/JS renderer sees the same
// naming convention CSS custom properties already use.
func NameKebabCase(tok *tokens.ResolvedToken) error {
	tok.Name = kebabCase(tok.Name)
	return nil
}

func kebabCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '.' || r == '_':
			sb.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r - 'A' + 'a')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ColorToHex rewrites every color-typed token's value to a "#rrggbb" string.
func ColorToHex(tok *tokens.ResolvedToken) error {
	return rewriteColor(tok, func(c colors.Color) string { return c.Hex() })
}

// ColorToRGB rewrites every color-typed token's value to an "rgb(r, g, b)" string.
func ColorToRGB(tok *tokens.ResolvedToken) error {
	return rewriteColor(tok, func(c colors.Color) string { return c.ToRGB() })
}

// ColorToOKLCH rewrites every color-typed token's value to an "oklch(...)" string.
func ColorToOKLCH(tok *tokens.ResolvedToken) error {
	return rewriteColor(tok, func(c colors.Color) string { return c.ToOKLCH() })
}

// rewriteColor leaves non-color tokens, unresolved aliases/expressions, and
// values that fail to parse untouched rather than erroring the whole
// build — a renderer-specific color-format preference shouldn't fail a
// build over one token it doesn't recognize.
func rewriteColor(tok *tokens.ResolvedToken, format func(colors.Color) string) error {
	if tok.Type != "color" {
		return nil
	}
	switch v := tok.Value.(type) {
	case string:
		c, err := colors.Parse(v)
		if err != nil {
			return nil
		}
		tok.Value = format(c)
	case map[string]any:
		c, err := colors.ParseObject(v)
		if err != nil {
			return nil
		}
		tok.Value = format(c)
	}
	return nil
}

const rootFontSizePx = 16.0

// DimensionToRem rewrites every px-valued dimension token to rem, assuming a
// 16px root font size.
func DimensionToRem(tok *tokens.ResolvedToken) error {
	return rewriteDimension(tok, "rem")
}

// DimensionToPx rewrites every rem-valued dimension token to px.
func DimensionToPx(tok *tokens.ResolvedToken) error {
	return rewriteDimension(tok, "px")
}

func rewriteDimension(tok *tokens.ResolvedToken, targetUnit string) error {
	if tok.Type != "dimension" {
		return nil
	}

	var dim tokens.Dimension
	var err error
	asObject := false

	switch v := tok.Value.(type) {
	case string:
		dim, err = tokens.ParseDimension(v)
	case map[string]any:
		val, okVal := v["value"].(float64)
		unit, okUnit := v["unit"].(string)
		if !okVal || !okUnit {
			return nil
		}
		dim, asObject = tokens.Dimension{Value: val, Unit: unit}, true
	default:
		return nil
	}
	if err != nil || dim.Unit == targetUnit || (dim.Unit != "px" && dim.Unit != "rem") {
		return nil
	}

	var rewritten tokens.Dimension
	switch targetUnit {
	case "rem":
		rewritten = tokens.Dimension{Value: dim.Value / rootFontSizePx, Unit: "rem"}
	case "px":
		rewritten = tokens.Dimension{Value: dim.Value * rootFontSizePx, Unit: "px"}
	}

	if asObject {
		tok.Value = map[string]any{"value": rewritten.Value, "unit": rewritten.Unit}
	} else {
		tok.Value = rewritten.String()
	}
	return nil
}

// ContrastOf is a preprocessor (not a Transform, since it reads a second
// token) that rewrites every color token carrying an
// $extensions.contrastAgainst path to the WCAG content color computed
// against that reference's resolved value (spec supplement: "WCAG contrast
// as transform+lint rule"). Tokens without the extension are left alone, so
// registering this unconditionally in a Chain is safe.
func ContrastOf(tok tokens.ResolvedTokenMap) error {
	for _, t := range tok {
		ref, ok := t.Extensions["contrastAgainst"].(string)
		if !ok || ref == "" {
			continue
		}
		bgTok, ok := tok[ref]
		if !ok {
			continue
		}
		bgStr, ok := bgTok.Value.(string)
		if !ok {
			continue
		}
		bg, err := colors.Parse(bgStr)
		if err != nil {
			continue
		}
		t.Value = colors.ContentColor(bg).Hex()
	}
	return nil
}
