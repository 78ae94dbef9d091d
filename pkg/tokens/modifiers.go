package tokens

import "strings"

// PreparedInputs is the result of normalizing and validating a caller's
// modifier-input selections against a resolver document (spec §4.4).
type PreparedInputs struct {
	// Normalized holds every modifier's selected context name, lowercased.
	Normalized ModifierInputs
	// Resolved holds the same selections re-cased to match the resolver
	// document's declared modifier/context names exactly.
	Resolved ModifierInputs
}

// PrepareModifierInputs normalizes, default-fills, and validates a set of
// caller-supplied modifier selections against doc's declared modifiers.
//
// - Unknown modifier names are rejected with a MODIFIER error and
//   suggestions.
// - Unknown context names (within a known modifier) are rejected with a
//   MODIFIER error and suggestions scoped to that modifier's contexts.
// - Modifiers with no caller-supplied selection fall back to their
//   declared default; a modifier with neither a selection nor a default is
//   left unset (the permutation engine enumerates all of its contexts).
// - If doc declares no modifiers at all but the caller supplied any inputs,
//   that is itself a MODIFIER error.
func PrepareModifierInputs(doc *ResolverDocument, inputs ModifierInputs) (PreparedInputs, error) {
	if len(doc.Modifiers) == 0 && len(inputs) > 0 {
		return PreparedInputs{}, NewError(CodeModifier, "resolver document declares no modifiers, but modifier inputs were supplied")
	}

	lowerInputs := make(map[string]string, len(inputs))
	originalModifierCasing := make(map[string]string, len(inputs))
	for k, v := range inputs {
		lk := strings.ToLower(k)
		lowerInputs[lk] = strings.ToLower(v)
		originalModifierCasing[lk] = k
	}

	modifierNames := doc.ModifierNames()
	lowerToActual := make(map[string]string, len(modifierNames))
	for _, name := range modifierNames {
		lowerToActual[strings.ToLower(name)] = name
	}

	for lk := range lowerInputs {
		if _, ok := lowerToActual[lk]; !ok {
			return PreparedInputs{}, NewError(CodeModifier, "unknown modifier %q", originalModifierCasing[lk]).
				WithSuggestions(suggest(originalModifierCasing[lk], modifierNames, 3))
		}
	}

	normalized := make(ModifierInputs)
	resolved := make(ModifierInputs)

	for _, modName := range modifierNames {
		mod := doc.Modifiers[modName]
		contextNames := doc.ContextNames(modName)
		lowerCtxToActual := make(map[string]string, len(contextNames))
		for _, c := range contextNames {
			lowerCtxToActual[strings.ToLower(c)] = c
		}

		selectedLower, supplied := lowerInputs[strings.ToLower(modName)]
		if !supplied {
			if mod.Default == "" {
				continue
			}
			selectedLower = strings.ToLower(mod.Default)
		}

		actualCtx, ok := lowerCtxToActual[selectedLower]
		if !ok {
			return PreparedInputs{}, NewError(CodeModifier, "unknown context %q for modifier %q", selectedLower, modName).
				WithSuggestions(suggest(selectedLower, contextNames, 3))
		}

		normalized[strings.ToLower(modName)] = selectedLower
		resolved[modName] = actualCtx
	}

	return PreparedInputs{Normalized: normalized, Resolved: resolved}, nil
}
