// tokforge/pkg/render/js.go
package render

import (
	"fmt"
	"sort"
	"strings"
)

// JSRenderer emits token values as CommonJS (module.exports) and ESM
// (export const) modules, one pair of files per permutation the same way
// the css renderer's standalone preset works — a design-token module has
// no notion of "inline theme overlay", so bundle and modifier both fall
// back to one module per permutation (spec §5 "js").
type JSRenderer struct{}

// NewJSRenderer constructs a JSRenderer.
func NewJSRenderer() *JSRenderer { return &JSRenderer{} }

func (r *JSRenderer) Name() string { return "js" }

func (r *JSRenderer) Format(ctx *RenderContext) (FileTree, error) {
	tree := make(FileTree, len(ctx.Permutations)*2)
	for _, perm := range ctx.Permutations {
		names := sortedNames(perm.Tokens)

		var cjs, esm strings.Builder
		cjs.WriteString("module.exports = {\n")
		for _, name := range names {
			esm.WriteString(fmt.Sprintf("export const %s = %s;\n", lowerCamelName(name), jsLiteral(perm.Tokens[name].Value)))
			cjs.WriteString(fmt.Sprintf("  %q: %s,\n", name, jsLiteral(perm.Tokens[name].Value)))
		}
		cjs.WriteString("};\n")

		base := strings.TrimSuffix(fileNameFor(ctx, perm, "js"), ".js")
		tree[base+".cjs.js"] = []byte(cjs.String())
		tree[base+".esm.js"] = []byte(esm.String())
	}
	return tree, nil
}

// jsLiteral renders a resolved token's value as a JS expression: a quoted
// string for string/dimension-string values, a bare numeral for numbers, and
// JSON.stringify-equivalent for anything else.
func jsLiteral(val any) string {
	switch v := val.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float64, int, int64:
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%v", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = jsLiteral(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, jsLiteral(v[k]))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
	}
}
