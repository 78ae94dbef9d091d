// tokforge/pkg/render/renderer.go
package render

import "github.com/tokforge/tokforge/pkg/tokens"

// Preset controls how a Renderer spreads a build's permutations across
// output files (spec §1.8 "Renderer dispatch").
type Preset string

const (
	// PresetBundle packs every permutation into one file (the base
	// permutation plus, where the renderer supports it, inline overlays for
	// every other permutation — e.g. the CSS renderer's @layer themes).
	PresetBundle Preset = "bundle"
	// PresetStandalone emits one complete, self-contained file per
	// permutation.
	PresetStandalone Preset = "standalone"
	// PresetModifier emits the base permutation as one file plus one
	// diff-only overlay file per non-base permutation.
	PresetModifier Preset = "modifier"
)

// FileTree is a renderer's output: relative file path to file content.
type FileTree map[string][]byte

// RenderContext carries everything a Renderer needs to produce a FileTree:
// every permutation a build composed (index 0 is always the base
// permutation, per C6), plus the supplemented-feature side channels
// (components, breakpoints, @property tokens, catalog metadata) that don't
// live on ResolvedToken itself because they describe groups, not leaves.
type RenderContext struct {
	Permutations []tokens.Permutation

	Components       map[string]tokens.ComponentDefinition
	Breakpoints      map[string]string
	PropertyTokens   []tokens.PropertyToken
	ResponsiveTokens []tokens.ResponsiveToken
	Keyframes        []tokens.KeyframeDefinition
	Metadata         map[string]*tokens.TokenMetadata

	Preset Preset

	// FileName overrides the renderer's default per-permutation file
	// naming when set (spec §1.8 "file-name resolution via string
	// template, callback, or renderer default").
	FileName func(perm tokens.Permutation) string

	// Category and CustomizableOnly scope the json renderer's
	// catalog/manifest output (spec §4 "Catalog/manifest JSON output").
	Category         string
	CustomizableOnly bool
}

// Renderer turns a composed, processed set of permutations into output
// files. Concrete renderers (css, json, js, tailwind, ios, android) each
// interpret RenderContext.Preset in the way natural to their output format.
type Renderer interface {
	Name() string
	Format(ctx *RenderContext) (FileTree, error)
}
