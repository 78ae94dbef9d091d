package tokens

import "reflect"

// DiffResolved reports every token in target whose final value differs from
// (or is absent from) base, keyed by token name. Used to report which
// tokens a non-base permutation actually overrides relative to the base
// permutation (spec §3 "Permutation", base permutation = index 0).
func DiffResolved(target, base ResolvedTokenMap) map[string]any {
	diff := make(map[string]any)
	for name, tok := range target {
		baseTok, exists := base[name]
		if !exists || !reflect.DeepEqual(tok.Value, baseTok.Value) {
			diff[name] = tok.Value
		}
	}
	return diff
}
