// tokforge/pkg/build/coordinator_test.go
package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokforge/tokforge/pkg/render"
	"github.com/tokforge/tokforge/pkg/tokens"
)

func TestFilterPermutations_EmptyWantKeepsEverything(t *testing.T) {
	all := []tokens.Permutation{
		{ModifierInputs: nil},
		{ModifierInputs: tokens.ModifierInputs{"theme": "dark"}},
	}
	assert.Equal(t, all, filterPermutations(all, nil))
}

func TestFilterPermutations_MatchesExactSelection(t *testing.T) {
	all := []tokens.Permutation{
		{ModifierInputs: tokens.ModifierInputs{"theme": "dark", "density": "compact"}},
		{ModifierInputs: tokens.ModifierInputs{"theme": "light", "density": "compact"}},
	}
	got := filterPermutations(all, tokens.ModifierInputs{"theme": "dark"})
	require.Len(t, got, 1)
	assert.Equal(t, "dark", got[0].ModifierInputs["theme"])
}

func TestFilterPermutations_NoMatchReturnsEmpty(t *testing.T) {
	all := []tokens.Permutation{{ModifierInputs: tokens.ModifierInputs{"theme": "light"}}}
	assert.Empty(t, filterPermutations(all, tokens.ModifierInputs{"theme": "dark"}))
}

func TestSetNameFromRef(t *testing.T) {
	name, ok := setNameFromRef("#/sets/brand")
	assert.True(t, ok)
	assert.Equal(t, "brand", name)

	_, ok = setNameFromRef("#/modifiers/theme")
	assert.False(t, ok)
}

func TestWrite_PersistsEveryOutputAndCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	result := Result{
		Success: true,
		Outputs: render.FileTree{
			"tokens.css":          []byte("body {}"),
			"nested/tokens.json": []byte("{}"),
		},
	}
	errs := Write(dir, result)
	assert.Empty(t, errs)

	content, err := os.ReadFile(filepath.Join(dir, "tokens.css"))
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "nested/tokens.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}
