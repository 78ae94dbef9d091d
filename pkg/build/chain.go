// tokforge/pkg/build/chain.go
package build

import "github.com/tokforge/tokforge/pkg/tokens"

// Preprocessor runs once per permutation, before filters/transforms,
// mutating the composed token map in place or reading across tokens (spec
// §1.7 "Processor chain"). Expression evaluation (calc/contrast/darken/
// lighten/scale) and cross-token operations like ContrastOf live here rather
// than as Transforms, since a Transform only ever sees one token at a time.
type Preprocessor func(tokens.ResolvedTokenMap) error

// Filter reports whether a token should remain in the output for this
// permutation. Filters run after preprocessors and before transforms.
type Filter func(*tokens.ResolvedToken) bool

// Transform rewrites a single token's value (or name) in place. Transforms
// run last, once per surviving token, in registration order.
type Transform func(*tokens.ResolvedToken) error

// Chain bundles the preprocessor/filter/transform stages a build applies to
// every permutation it produces, grounded on the teacher's linear
// loader->resolver->generator pipeline (cmd/tokctl/build.go) generalized
// into named, composable stages per the "Processor chain" component.
type Chain struct {
	Preprocessors []Preprocessor
	Filters       []Filter
	Transforms    []Transform
}

// DefaultChain is the chain every build runs unless Options.Chain supplies
// stages of its own:
// expression evaluation as the sole preprocessor, no filters, no transforms.
func DefaultChain() Chain {
	return Chain{
		Preprocessors: []Preprocessor{tokens.ResolveExpressions},
	}
}

// Run applies the preprocessors to tok in place, filters it, and runs the
// transforms on a copy of each surviving token, so transforms leave tok's
// own records unchanged. It returns the surviving subset, reindexed by each
// token's final Name (a Transform may have renamed it).
func (c Chain) Run(tok tokens.ResolvedTokenMap) (tokens.ResolvedTokenMap, error) {
	for _, pre := range c.Preprocessors {
		if err := pre(tok); err != nil {
			return nil, err
		}
	}

	kept := make([]*tokens.ResolvedToken, 0, len(tok))
	for _, t := range tok {
		keep := true
		for _, f := range c.Filters {
			if !f(t) {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, t)
		}
	}

	for i, t := range kept {
		cp := *t
		for _, tr := range c.Transforms {
			if err := tr(&cp); err != nil {
				return nil, err
			}
		}
		kept[i] = &cp
	}

	out := make(tokens.ResolvedTokenMap, len(kept))
	for _, t := range kept {
		out[t.Name] = t
	}
	return out, nil
}
