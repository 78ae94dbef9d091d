// tokforge/pkg/tokens/compose_test.go
package tokens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inlineDoc builds a resolver document whose sets/modifiers carry inline
// token documents (SourceRef.Inline) instead of file $refs, so Compose can
// be exercised without touching disk.
func inlineDoc() *ResolverDocument {
	return &ResolverDocument{
		Version: ResolverVersion,
		Sets: map[string]Set{
			"brand": {
				Sources: []SourceRef{{Inline: map[string]any{
					"color": map[string]any{
						"brand": map[string]any{
							"primary": map[string]any{"$value": "#3b82f6", "$type": "color"},
						},
					},
				}}},
			},
			"semantic": {
				Sources: []SourceRef{{Inline: map[string]any{
					"color": map[string]any{
						"status": map[string]any{
							"success": map[string]any{"$value": "{color.brand.primary}", "$type": "color"},
						},
					},
				}}},
			},
		},
		Modifiers: map[string]Modifier{
			"theme": {
				Default: "light",
				Contexts: map[string][]SourceRef{
					"light": {},
					"dark": {{Inline: map[string]any{
						"color": map[string]any{
							"status": map[string]any{
								"success": map[string]any{"$value": "#16a34a", "$type": "color"},
							},
						},
					}}},
				},
			},
		},
		ResolutionOrder: []ResolutionStep{
			{Ref: "#/sets/brand"},
			{Ref: "#/sets/semantic"},
			{Ref: "#/modifiers/theme"},
		},
	}
}

func TestComposer_Compose_ResolvesAliasAcrossSets(t *testing.T) {
	doc := inlineDoc()
	composer := NewComposer(doc, ParseOptions{Mode: ModeWarn, Sink: StderrSink{}})

	resolved, err := composer.Compose(nil)
	require.NoError(t, err)

	primary, ok := resolved["color.brand.primary"]
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", primary.Value)

	success, ok := resolved["color.status.success"]
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", success.Value)
	assert.True(t, success.IsAlias)
	assert.Equal(t, "{color.brand.primary}", success.OriginalValue)
	assert.Equal(t, "semantic", success.SourceSet)
}

func TestComposer_Compose_ModifierOverlayOverridesAlias(t *testing.T) {
	doc := inlineDoc()
	composer := NewComposer(doc, ParseOptions{Mode: ModeWarn, Sink: StderrSink{}})

	resolved, err := composer.Compose(ModifierInputs{"theme": "dark"})
	require.NoError(t, err)

	success, ok := resolved["color.status.success"]
	require.True(t, ok)
	assert.Equal(t, "#16a34a", success.Value)
	assert.False(t, success.IsAlias)
	assert.Equal(t, "theme", success.SourceModifier)
	assert.Equal(t, "dark", success.SourceContext)
}

func TestResolveAllPermutations_BaseIsLightAndDedupesAgainstDefault(t *testing.T) {
	doc := inlineDoc()
	composer := NewComposer(doc, ParseOptions{Mode: ModeWarn, Sink: StderrSink{}})

	perms, err := ResolveAllPermutations(doc, composer)
	require.NoError(t, err)
	require.Len(t, perms, 2)

	base := perms[0]
	assert.Equal(t, ModifierInputs{"theme": "light"}, base.ModifierInputs)
	assert.Equal(t, "#3b82f6", base.Tokens["color.status.success"].Value)

	dark := perms[1]
	assert.Equal(t, ModifierInputs{"theme": "dark"}, dark.ModifierInputs)
	assert.Equal(t, "#16a34a", dark.Tokens["color.status.success"].Value)
}

// TestResolveAllPermutations_ValueShapeMatchesAcrossPermutations uses go-cmp
// to diff the two permutations' resolved maps down to the $value level,
// ignoring the bookkeeping fields (SourceSet/SourceModifier/SourceContext,
// OriginalValue, IsAlias) that are expected to differ between a base and an
// overlay permutation.
func TestResolveAllPermutations_ValueShapeMatchesAcrossPermutations(t *testing.T) {
	doc := inlineDoc()
	composer := NewComposer(doc, ParseOptions{Mode: ModeWarn, Sink: StderrSink{}})

	perms, err := ResolveAllPermutations(doc, composer)
	require.NoError(t, err)
	require.Len(t, perms, 2)

	valuesOnly := func(tokens ResolvedTokenMap) map[string]any {
		out := make(map[string]any, len(tokens))
		for name, tok := range tokens {
			out[name] = tok.Value
		}
		return out
	}

	base := valuesOnly(perms[0].Tokens)
	dark := valuesOnly(perms[1].Tokens)

	diff := cmp.Diff(base, dark)
	assert.NotEmpty(t, diff, "expected the dark overlay to change color.status.success")
	assert.Equal(t, base["color.brand.primary"], dark["color.brand.primary"])

	wantDark := map[string]any{
		"color.brand.primary":  "#3b82f6",
		"color.status.success": "#16a34a",
	}
	assert.True(t, cmp.Equal(wantDark, dark), "dark permutation values diverged from expectation:\n%s", cmp.Diff(wantDark, dark))
}
