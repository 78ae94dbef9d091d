package generators

import (
	"fmt"
	"strings"

	"github.com/tokforge/tokforge/pkg/colors"
)

// SerializeValue converts any interface{} (string, array, etc) to a valid CSS value string
func SerializeValue(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []interface{}:
		// Join arrays with spaces (common for short-hand props like margin/padding)
		// Or commas? Context matters. But for design tokens, space is safer default for shadows/etc unless it's font-family.
		// W3C spec usually defines shadow arrays. CSS requires comma for multiple shadows.
		// Let's check if it looks like a shadow definition.
		// For MVP, space separation is risky for multi-layer shadows.
		// Let's default to comma separation for arrays, as that is standard for multi-value props (font-family, box-shadow, transition).
		// Space separation is usually intra-value (10px 20px).
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// spaceSeparatedProps are CSS properties whose multi-value shorthand is
// space-separated (box-model edges, grid tracks, background positioning)
// rather than comma-separated (the default for layered values like
// box-shadow/transition/font-family).
var spaceSeparatedProps = map[string]bool{
	"margin":                true,
	"padding":               true,
	"border":                true,
	"border-width":          true,
	"border-radius":         true,
	"gap":                   true,
	"grid-template-columns": true,
	"grid-template-rows":    true,
	"background-size":       true,
	"background-position":   true,
	"inset":                 true,
	"flex":                  true,
}

// vendorPrefixes are stripped before looking up a property's separator, so
// "-webkit-border-radius" resolves the same as "border-radius".
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// getArraySeparator reports the separator (" " or ", ") SerializeValueForProperty
// uses to join a property's array value, matched case-insensitively and
// after stripping any vendor prefix.
func getArraySeparator(property string) string {
	name := strings.ToLower(property)
	for _, prefix := range vendorPrefixes {
		name = strings.TrimPrefix(name, prefix)
	}
	if spaceSeparatedProps[name] {
		return " "
	}
	return ", "
}

// SerializeValueForProperty converts a resolved component/variant property
// value into a CSS value string, choosing space- or comma-separation for
// array values based on the target CSS property (spec supplement: semantic
// component rendering, §4 "Component/variant extraction").
func SerializeValueForProperty(property string, val interface{}) string {
	arr, ok := val.([]interface{})
	if !ok {
		return fmt.Sprintf("%v", val)
	}
	if len(arr) == 0 {
		return ""
	}
	parts := make([]string, len(arr))
	for i, item := range arr {
		parts[i] = fmt.Sprintf("%v", item)
	}
	return strings.Join(parts, getArraySeparator(property))
}

// serializeValueForCSS converts a resolved token's value into a CSS custom
// property value string, accepting both the teacher's bare-string/array
// values and the DTCG color/dimension object shapes (spec §3).
func serializeValueForCSS(val interface{}) string {
	switch v := val.(type) {
	case map[string]interface{}:
		if unit, ok := v["unit"]; ok {
			return fmt.Sprintf("%v%v", v["value"], unit)
		}
		if _, ok := v["colorSpace"]; ok {
			if c, err := colors.ParseObject(v); err == nil {
				return c.ToCSS(colors.FormatRGB)
			}
		}
		return fmt.Sprintf("%v", v)
	default:
		return SerializeValue(val)
	}
}
