package tokens

import "sort"

// Permutation is one fully-composed, alias-resolved token map together with
// the modifier selections that produced it (spec §3).
type Permutation struct {
	ModifierInputs ModifierInputs
	Tokens         ResolvedTokenMap
}

// ResolveTokens composes and resolves exactly one permutation for the given
// (already-prepared) modifier inputs.
func ResolveTokens(doc *ResolverDocument, composer *Composer, inputs ModifierInputs) (ResolvedTokenMap, error) {
	return composer.Compose(inputs)
}

// ResolveAllPermutations enumerates the Cartesian product of every
// modifier's contexts, in modifier declaration order, and composes one
// permutation per combination. Index 0 is always the base permutation
// (every modifier at its default); a modifier without a default contributes
// its first declared context to the base permutation.
//
// The composer's internal source cache (keyed by set/modifier+context, not
// by permutation) means the per-document parse cost is paid once across the
// whole sweep regardless of permutation count (spec §3 "Lifecycle").
func ResolveAllPermutations(doc *ResolverDocument, composer *Composer) ([]Permutation, error) {
	modNames := doc.ModifierNames()

	type axis struct {
		modifier string
		contexts []string
	}
	axes := make([]axis, 0, len(modNames))
	for _, name := range modNames {
		contexts := doc.ContextNames(name)
		if len(contexts) == 0 {
			continue
		}
		axes = append(axes, axis{modifier: name, contexts: contexts})
	}

	base := make(ModifierInputs, len(axes))
	for _, a := range axes {
		def := doc.Modifiers[a.modifier].Default
		if def == "" {
			def = a.contexts[0]
		}
		base[a.modifier] = def
	}

	baseTokens, err := composer.Compose(base)
	if err != nil {
		return nil, err
	}
	permutations := []Permutation{{ModifierInputs: base, Tokens: baseTokens}}

	seen := map[string]bool{inputsKey(base): true}

	var enumerate func(idx int, current ModifierInputs) error
	enumerate = func(idx int, current ModifierInputs) error {
		if idx == len(axes) {
			key := inputsKey(current)
			if seen[key] {
				return nil
			}
			seen[key] = true

			cp := make(ModifierInputs, len(current))
			for k, v := range current {
				cp[k] = v
			}
			tokens, err := composer.Compose(cp)
			if err != nil {
				return err
			}
			permutations = append(permutations, Permutation{ModifierInputs: cp, Tokens: tokens})
			return nil
		}

		for _, ctx := range axes[idx].contexts {
			current[axes[idx].modifier] = ctx
			if err := enumerate(idx+1, current); err != nil {
				return err
			}
		}
		return nil
	}

	if err := enumerate(0, make(ModifierInputs, len(axes))); err != nil {
		return nil, err
	}

	return permutations, nil
}

// inputsKey builds a stable map key for dedup so the base permutation
// (already composed explicitly above) isn't composed a second time when the
// enumeration happens to reach the same combination.
func inputsKey(inputs ModifierInputs) string {
	// Deterministic key independent of map iteration order: build it from
	// doc-declared modifier order isn't available here, so fall back to a
	// simple sorted concatenation.
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "=" + inputs[k] + ";"
	}
	return out
}
