// tokforge/pkg/tokens/property.go

package tokens

import (
	"fmt"
	"strings"
)

// PropertyToken represents a token that should generate a CSS @property declaration
type PropertyToken struct {
	Path         string      // Token path (e.g., "color.primary")
	Value        any // Resolved value
	Type         string      // Token type (color, dimension, number, etc.)
	Inherits     bool        // CSS @property inherits value
	CSSName      string      // CSS variable name (e.g., "--color-primary")
	CSSSyntax    string      // CSS @property syntax (e.g., "<color>")
	InitialValue string      // CSS @property initial-value
}

// CSSPropertySyntax maps token $type to CSS @property syntax
func CSSPropertySyntax(tokenType string) string {
	switch tokenType {
	case "color":
		return "<color>"
	case "dimension":
		return "<length>"
	case "number":
		return "<number>"
	case "duration":
		return "<time>"
	case "effect":
		return "<integer>"
	default:
		// Types like fontFamily don't have a direct CSS syntax
		return ""
	}
}

// ExtractResolvedPropertyTokens scans an already-composed ResolvedTokenMap
// for tokens carrying a $property field, reading the folded
// $extensions.property key, since by the time @property declarations are
// emitted (render stage) only the flattened map exists.
func ExtractResolvedPropertyTokens(tokens ResolvedTokenMap) []PropertyToken {
	var properties []PropertyToken
	for name, tok := range tokens {
		if tok.Extensions == nil {
			continue
		}
		propField, hasProperty := tok.Extensions["property"]
		if !hasProperty || tok.Type == "" {
			continue
		}

		syntax := CSSPropertySyntax(tok.Type)
		if syntax == "" {
			continue
		}

		inherits := true
		switch v := propField.(type) {
		case bool:
			if !v {
				continue
			}
		case map[string]any:
			if inh, ok := v["inherits"].(bool); ok {
				inherits = inh
			}
		}

		properties = append(properties, PropertyToken{
			Path:         name,
			Value:        tok.Value,
			Type:         tok.Type,
			Inherits:     inherits,
			CSSName:      "--" + strings.ReplaceAll(name, ".", "-"),
			CSSSyntax:    syntax,
			InitialValue: formatInitialValue(tok.Value),
		})
	}
	return properties
}

// formatInitialValue converts a resolved value to a CSS initial-value string
func formatInitialValue(val any) string {
	switch v := val.(type) {
	case []any:
		// Arrays are comma-separated
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatInitialValue(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	case string:
		return v
	case float64:
		if v == float64(int(v)) {
			return fmt.Sprintf("%d", int(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", val)
	}
}
