package tokens

import "strings"

// Composer walks a resolver document's resolutionOrder and produces one
// fully-composed, alias-resolved ResolvedTokenMap per call to Compose,
// sharing the ReferenceResolver's parsed-document cache across every call it
// makes during one build (spec §1.5/§1.6).
type Composer struct {
	doc      *ResolverDocument
	refs     *ReferenceResolver
	opts     ParseOptions
	srcCache map[string]ResolvedTokenMap // "kind:name[.context]" -> parsed+flattened (pre-merge) tokens of one set/context, shared across permutations

	// preserveReferences, when set via PreserveReferences, makes Compose skip
	// ResolveAliases entirely so alias tokens survive to the renderer as
	// references instead of being inlined (spec §3 "preserveReferences";
	// §4.3 "the alias resolver is skipped for an output that sets it").
	preserveReferences bool
}

// NewComposer builds a Composer for doc, rooted at doc.BaseDir for file
// $refs.
func NewComposer(doc *ResolverDocument, opts ParseOptions) *Composer {
	return &Composer{
		doc:      doc,
		refs:     NewReferenceResolver(doc.BaseDir),
		opts:     opts,
		srcCache: make(map[string]ResolvedTokenMap),
	}
}

// PreserveReferences sets whether subsequent Compose calls leave alias
// tokens unresolved ({name} survives as a reference, §3 "preserveReferences")
// instead of inlining their terminal value. Returns c for chaining at the
// call site that builds the Composer.
func (c *Composer) PreserveReferences(preserve bool) *Composer {
	c.preserveReferences = preserve
	return c
}

// Compose produces the composed token map for one set of resolved modifier
// inputs (a single permutation), alias-resolved unless PreserveReferences
// was set. inputs must already be in resolver-declared casing
// (PrepareModifierInputs.Resolved).
func (c *Composer) Compose(inputs ModifierInputs) (ResolvedTokenMap, error) {
	out := make(ResolvedTokenMap)

	for _, step := range c.doc.ResolutionOrder {
		kind, name, err := parseResolutionRef(step.Ref)
		if err != nil {
			return nil, err
		}

		switch kind {
		case "sets":
			set, ok := c.doc.Sets[name]
			if !ok {
				return nil, NewError(CodeConfiguration, "resolutionOrder references unknown set %q", name)
			}
			flat, err := c.loadAndParseSources("set:"+name, set.Sources, "")
			if err != nil {
				return nil, err
			}
			mergeResolvedInto(out, flat, name, "", "")

		case "modifiers":
			mod, ok := c.doc.Modifiers[name]
			if !ok {
				return nil, NewError(CodeConfiguration, "resolutionOrder references unknown modifier %q", name)
			}
			context, selected := inputs[name]
			if !selected {
				context = mod.Default
			}
			if context == "" {
				continue // no selection and no default: this modifier contributes nothing to this permutation
			}
			sources, ok := mod.Contexts[context]
			if !ok {
				return nil, NewError(CodeModifier, "modifier %q has no context %q", name, context)
			}
			flat, err := c.loadAndParseSources("modifier:"+name+"."+context, sources, "")
			if err != nil {
				return nil, err
			}
			mergeResolvedInto(out, flat, "", name, context)

		default:
			return nil, NewError(CodeConfiguration, "resolutionOrder entry %q must reference #/sets/NAME or #/modifiers/NAME", step.Ref)
		}
	}

	if c.preserveReferences {
		MarkPreservedAliases(out)
		return out, nil
	}

	if err := ResolveAliases(out, c.opts); err != nil {
		return nil, err
	}

	// A warn-mode ResolveAliases run swallows a missing-target error as a
	// warning, leaving the token's Value as its original unresolved {name}
	// string. Per spec §3, that's only acceptable when preserveReferences is
	// set; otherwise it's a hard error at this point regardless of mode.
	for name, tok := range out {
		if target, ok := isAliasString(tok.Value); ok {
			return nil, NewError(CodeTokenReference, "alias %q does not resolve to a value", target).WithPath(name)
		}
	}
	return out, nil
}

// loadAndParseSources loads and parses (but does not merge) every document
// in sources, merging multiple sources of the same set/context together
// first (teacher-style deep merge with warnings), then caching the result
// under cacheKey for reuse across permutations.
func (c *Composer) loadAndParseSources(cacheKey string, sources []SourceRef, currentFile string) (ResolvedTokenMap, error) {
	if cached, ok := c.srcCache[cacheKey]; ok {
		return cached, nil
	}

	combined := NewDictionary()
	for _, src := range sources {
		dict, err := c.refs.ResolveSource(src, currentFile)
		if err != nil {
			return nil, err
		}
		if err := combined.MergeWithPath(dict, c.opts.modeOrDefault(), c.opts.sinkOrDefault()); err != nil {
			return nil, err
		}
	}

	if err := ExpandScales(combined); err != nil {
		return nil, err
	}

	flat, err := ParseDocument(combined.Root, "", c.opts)
	if err != nil {
		return nil, err
	}
	c.srcCache[cacheKey] = flat
	return flat, nil
}

// mergeResolvedInto shallow-merges src into dst, stamping _sourceSet or
// _sourceModifier/_sourceContext on every entry it writes or overwrites.
// Per the Open Question decision in DESIGN.md, the latest contributor in
// resolutionOrder wins the stamp outright (no accumulation of prior
// contributors). Per spec §4.5(3), an overlay entry that omits $type or
// $description inherits it from the base entry it overrides.
func mergeResolvedInto(dst, src ResolvedTokenMap, setName, modifierName, contextName string) {
	for name, tok := range src {
		cp := *tok
		if base, ok := dst[name]; ok {
			if cp.Type == "" {
				cp.Type = base.Type
			}
			if cp.Description == "" {
				cp.Description = base.Description
			}
		}
		cp.SourceSet = setName
		cp.SourceModifier = modifierName
		cp.SourceContext = contextName
		dst[name] = &cp
	}
}

// parseResolutionRef splits a resolutionOrder entry's $ref (e.g.
// "#/sets/core" or "#/modifiers/theme") into its kind ("sets"/"modifiers")
// and name.
func parseResolutionRef(ref string) (kind, name string, err error) {
	trimmed := strings.TrimPrefix(ref, "#/")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || (parts[0] != "sets" && parts[0] != "modifiers") {
		return "", "", NewError(CodeConfiguration, "invalid resolutionOrder $ref %q", ref)
	}
	return parts[0], parts[1], nil
}
