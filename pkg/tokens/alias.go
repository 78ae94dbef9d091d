package tokens

import "sort"

// aliasGraph is a dependency graph over a ResolvedTokenMap's {name} alias
// references: an edge a -> b means "a's value is an alias referencing b".
//
// Grounded on other_examples/bennypowers-design-tokens-language-server's
// internal/resolver/aliases.go (BuildDependencyGraph + HasCycle +
// TopologicalSort + per-token resolveToken), which resolves aliases in
// dependency order rather than the teacher's approach of re-entrant
// recursive resolution with a live call-stack visited set
// (pkg/tokens/resolver.go ResolveValue). The graph approach is preferred
// here because it lets ResolveAliases report every cycle member at once
// instead of failing on the first re-entrant name encountered.
type aliasGraph struct {
	edges map[string]string // token name -> the single name it aliases, if any
}

func buildAliasGraph(tokens ResolvedTokenMap) *aliasGraph {
	g := &aliasGraph{edges: make(map[string]string)}
	for name, tok := range tokens {
		if target, ok := isAliasString(tok.OriginalValue); ok {
			g.edges[name] = target
		}
	}
	return g
}

// topologicalSort returns every token name (aliases and non-aliases alike)
// ordered so that an alias always comes after the name it targets,
// processing ties in lexical order for determinism. Returns the first cycle
// found as an error if the alias graph is not acyclic.
func (g *aliasGraph) topologicalSort(allNames []string) ([]string, error) {
	names := append([]string(nil), allNames...)
	sort.Strings(names)

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			cycleStart := len(stack) - 1
			for cycleStart >= 0 && stack[cycleStart] != name {
				cycleStart--
			}
			var cycle []string
			if cycleStart >= 0 {
				cycle = append(cycle, stack[cycleStart:]...)
			}
			cycle = append(cycle, name)
			return NewError(CodeCircularReference, "alias cycle: %s", joinNames(cycle))
		}

		color[name] = gray
		stack = append(stack, name)

		if target, ok := g.edges[name]; ok {
			if _, known := color[target]; known || contains(names, target) {
				if err := visit(target); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if color[name] == white {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func contains(names []string, target string) bool {
	i := sort.SearchStrings(names, target)
	return i < len(names) && names[i] == target
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}

// AliasTarget reports the {name} an alias value references, or ok=false if
// value is not an alias string. Exported so callers outside this package
// (the renderers translating a preserved alias into a native reference form)
// can recognize alias values without duplicating the {…} syntax check.
func AliasTarget(value any) (string, bool) {
	return isAliasString(value)
}

// MarkPreservedAliases stamps IsAlias on every token whose OriginalValue is
// an alias reference, without substituting Value or validating that the
// target exists — the preserveReferences path (spec §3/§4.3: "unresolved
// aliases... are a hard error unless preserveReferences is set"; skipping
// substitution here is what lets a renderer emit a native reference, e.g.
// CSS's var(--…), instead of an inlined value).
func MarkPreservedAliases(tokens ResolvedTokenMap) {
	for _, tok := range tokens {
		if _, ok := isAliasString(tok.OriginalValue); ok {
			tok.IsAlias = true
		}
	}
}

// ResolveAliases follows every {name} chain in tokens to its terminal value,
// in dependency order, stamping IsAlias/Type/Value on each alias token in
// place (spec §4.3). Call sites that want `preserveReferences` behavior call
// MarkPreservedAliases instead, via Composer.PreserveReferences.
func ResolveAliases(tokens ResolvedTokenMap, opts ParseOptions) error {
	sink := opts.sinkOrDefault()
	mode := opts.modeOrDefault()

	names := tokens.Names()
	graph := buildAliasGraph(tokens)
	order, err := graph.topologicalSort(names)
	if err != nil {
		return err
	}

	candidateNames := names

	for _, name := range order {
		tok, ok := tokens[name]
		if !ok {
			continue
		}
		target, isAlias := isAliasString(tok.OriginalValue)
		if !isAlias {
			continue
		}

		targetTok, ok := tokens[target]
		if !ok {
			if err := handle(mode, sink, NewError(CodeTokenReference, "alias target %q does not exist", target).
				WithPath(name).
				WithSuggestions(suggest(target, candidateNames, 3))); err != nil {
				return err
			}
			continue
		}

		if targetTok.Type != "" && tok.Type != "" && targetTok.Type != tok.Type {
			if err := handle(mode, sink, NewError(CodeValidation, "alias %q declares $type %q but target %q has $type %q", name, tok.Type, target, targetTok.Type).WithPath(name)); err != nil {
				return err
			}
		}

		tok.Value = targetTok.Value
		if tok.Type == "" {
			tok.Type = targetTok.Type
		}
		tok.IsAlias = true
	}

	return nil
}
