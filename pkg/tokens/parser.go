package tokens

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// reservedKeys are the only "$"-prefixed keys a token or group may declare.
// Anything else starting with "$" is a hard validation error (spec §4.2).
//
// The core DTCG set is $root/$value/$ref/$type/$description/$deprecated/
// $extends/$extensions. The rest are the supplemented-feature extension
// keys carried from the original implementation (§4 "supplemented
// features"): $min/$max (constraints), $layer (layer-boundary linting),
// $usage/$avoid/$customizable (catalog metadata), $responsive
// (breakpoint overrides), $property (CSS @property emission),
// $breakpoints (root-level breakpoint table), and the semantic-component
// shape's own $class/$contains/$requires. $scale is handled and stripped
// before this pass ever runs (ExpandScales consumes it in the composer).
var reservedKeys = map[string]bool{
	"$root":        true,
	"$value":       true,
	"$ref":         true,
	"$type":        true,
	"$description": true,
	"$deprecated":  true,
	"$extends":     true,
	"$extensions":  true,
	"$min":         true,
	"$max":         true,
	"$layer":       true,
	"$usage":       true,
	"$avoid":       true,
	"$customizable": true,
	"$responsive":  true,
	"$property":    true,
	"$breakpoints": true,
	"$class":       true,
	"$contains":    true,
	"$requires":    true,
	"$container":   true,
}

// ParseOptions controls how the parser reacts to non-fatal issues (name
// collisions, inherited-type gaps) it is allowed to downgrade to a warning.
type ParseOptions struct {
	Mode ValidationMode
	Sink Sink
}

func (o ParseOptions) sinkOrDefault() Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return StderrSink{}
}

func (o ParseOptions) modeOrDefault() ValidationMode {
	if o.Mode == "" {
		return ModeError
	}
	return o.Mode
}

// isTokenLike reports whether a raw document node is a leaf token: it
// declares $value or $ref. Distinct from types.go's IsToken, which only
// checks $value — a $ref-only leaf is still a token per spec §3.
func isTokenLike(node map[string]any) bool {
	if _, ok := node["$value"]; ok {
		return true
	}
	_, ok := node["$ref"]
	return ok
}

// isAliasString reports whether a value is a bare {path.to.token} alias
// reference, as opposed to a $ref object or a literal value.
func isAliasString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || len(s) < 2 {
		return "", false
	}
	if s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// parseState carries the per-document bookkeeping the parser needs across
// its three passes: validate, resolve $extends, flatten.
type parseState struct {
	opts ParseOptions

	groups map[string]map[string]any // dotted group path -> raw node

	extendsMemo map[string]map[string]any // dotted group path -> merged children
	extendsBusy map[string]bool

	seenLower map[string]string // lowercased name -> first-seen actual name
}

// ParseDocument consumes a raw DTCG document (as produced by ParseJSON or
// ReferenceResolver.ResolveSource) and returns its flat resolved-token map
// (spec §4.2). $value fields are copied as-authored; alias substitution is
// the alias resolver's job (C3), not the parser's.
func ParseDocument(root map[string]any, sourceFile string, opts ParseOptions) (ResolvedTokenMap, error) {
	st := &parseState{
		opts:        opts,
		groups:      make(map[string]map[string]any),
		extendsMemo: make(map[string]map[string]any),
		extendsBusy: make(map[string]bool),
		seenLower:   make(map[string]string),
	}

	if err := st.validateNode(root, ""); err != nil {
		return nil, err
	}
	st.collectGroups(root, "")

	out := make(ResolvedTokenMap)
	if err := st.flatten("", "", "", sourceFile, out); err != nil {
		return nil, err
	}
	return out, nil
}

// validateNode runs the structural validation pass (spec §4.2 "Validation
// pass") over one raw node and recurses into its group-shaped children.
func (st *parseState) validateNode(node map[string]any, path string) error {
	tokenLike := isTokenLike(node)
	hasGroupChild := false

	for key, val := range node {
		if strings.HasPrefix(key, "$") {
			if !reservedKeys[key] {
				return NewError(CodeValidation, "unknown reserved key %q", key).WithPath(path)
			}
			continue
		}
		if strings.ContainsAny(key, "{}.") {
			childPath := joinPath(path, key)
			return NewError(CodeValidation, "token/group name %q contains a forbidden character ({, }, or .)", key).WithPath(childPath)
		}
		childMap, ok := val.(map[string]any)
		if !ok {
			continue
		}
		hasGroupChild = true
		childPath := joinPath(path, key)
		if err := st.validateNode(childMap, childPath); err != nil {
			return err
		}
	}

	if tokenLike && hasGroupChild {
		return NewError(CodeValidation, "group %q carries both a value/ref and child tokens", path).WithPath(path)
	}
	return nil
}

// collectGroups walks the raw (pre-$extends) tree and records every
// group-shaped node by its dotted path, so $extends targets anywhere in the
// document can be looked up regardless of nesting depth.
func (st *parseState) collectGroups(node map[string]any, path string) {
	if isTokenLike(node) {
		return
	}
	st.groups[path] = node
	for key, val := range node {
		if strings.HasPrefix(key, "$") {
			continue
		}
		childMap, ok := val.(map[string]any)
		if !ok {
			continue
		}
		st.collectGroups(childMap, joinPath(path, key))
	}
}

// resolveExtends returns the merged child-entry map for the group at path,
// per spec §4.2: for each $extends target in order, splice in that target's
// own (already-merged) children, then overlay this group's own children,
// with the current group winning on key conflicts. $root and $type are
// carried through as ordinary entries so flatten can special-case them; a
// group without its own $type thereby takes the one its $extends targets
// declare.
func (st *parseState) resolveExtends(path string) (map[string]any, error) {
	if merged, ok := st.extendsMemo[path]; ok {
		return merged, nil
	}
	if st.extendsBusy[path] {
		return nil, NewError(CodeCircularReference, "$extends cycle involving %q", path).WithPath(path)
	}
	node, ok := st.groups[path]
	if !ok {
		return nil, NewError(CodeValidation, "$extends target %q is not a group", path).WithPath(path)
	}
	st.extendsBusy[path] = true
	defer delete(st.extendsBusy, path)

	merged := make(map[string]any)

	if rawExtends, ok := node["$extends"]; ok {
		targets, ok := rawExtends.([]any)
		if !ok {
			return nil, NewError(CodeValidation, "$extends must be an array of group paths").WithPath(path)
		}
		for _, t := range targets {
			targetPath, ok := t.(string)
			if !ok {
				return nil, NewError(CodeValidation, "$extends entries must be strings").WithPath(path)
			}
			if _, exists := st.groups[targetPath]; !exists {
				return nil, NewError(CodeValidation, "$extends target %q does not exist", targetPath).
					WithPath(path).
					WithSuggestions(suggest(targetPath, st.groupPaths(), 3))
			}
			targetMerged, err := st.resolveExtends(targetPath)
			if err != nil {
				return nil, err
			}
			for k, v := range targetMerged {
				merged[k] = v
			}
		}
	}

	for key, val := range node {
		if key == "$root" || key == "$type" {
			merged[key] = val
			continue
		}
		if strings.HasPrefix(key, "$") {
			continue
		}
		merged[key] = val
	}

	st.extendsMemo[path] = merged
	return merged, nil
}

func (st *parseState) groupPaths() []string {
	paths := make([]string, 0, len(st.groups))
	for p := range st.groups {
		if p != "" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// flatten depth-first walks the merged-children view of the group at path,
// building dotted names and resolving $type inheritance, and appends every
// leaf it finds to out.
func (st *parseState) flatten(path, name, inheritedType, sourceFile string, out ResolvedTokenMap) error {
	node := st.groups[path]
	ownType := inheritedType
	if t, ok := node["$type"].(string); ok && t != "" {
		ownType = t
	}

	merged, err := st.resolveExtends(path)
	if err != nil {
		return err
	}
	if t, ok := merged["$type"].(string); ok && t != "" {
		ownType = t
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic traversal; public map iteration order is a separate concern (sort-on-read)

	for _, key := range keys {
		val := merged[key]

		if key == "$root" {
			tokenNode, ok := val.(map[string]any)
			if !ok {
				return NewError(CodeValidation, "$root must be a token object").WithPath(path)
			}
			if err := st.flattenLeaf(tokenNode, path, ownType, sourceFile, out); err != nil {
				return err
			}
			continue
		}

		childMap, ok := val.(map[string]any)
		if !ok {
			continue
		}
		childPath := joinPath(path, key)

		if isTokenLike(childMap) {
			if err := st.flattenLeaf(childMap, childPath, ownType, sourceFile, out); err != nil {
				return err
			}
			continue
		}

		// A $extends splice can introduce a subgroup at a path collectGroups
		// never walked (it only saw the pre-extends tree rooted at the
		// extending group, not the spliced-in target's nested children under
		// this path). Register it on first sight so the recursive flatten
		// below (and any resolveExtends it triggers) has a group to find.
		if _, known := st.groups[childPath]; !known {
			st.groups[childPath] = childMap
		}

		if err := st.flatten(childPath, key, ownType, sourceFile, out); err != nil {
			return err
		}
	}

	return nil
}

// flattenLeaf builds one ResolvedToken from a raw token node and records it,
// applying $type inheritance, alias type-inference deferral, and
// case-sensitive collision reporting.
func (st *parseState) flattenLeaf(node map[string]any, name, inheritedType, sourceFile string, out ResolvedTokenMap) error {
	sink := st.opts.sinkOrDefault()
	mode := st.opts.modeOrDefault()

	tokenType, _ := node["$type"].(string)
	value := node["$value"]

	if _, isAlias := isAliasString(value); isAlias {
		// $type may be legitimately absent; the alias resolver (C3) fills
		// it in from the alias target.
	} else if tokenType == "" {
		tokenType = inheritedType
		if tokenType == "" {
			if err := handle(mode, sink, NewError(CodeValidation, "token has no $type and none is inherited").WithPath(name).WithSource(sourceFile)); err != nil {
				return err
			}
		}
	}

	if lower := strings.ToLower(name); st.seenLower[lower] != "" && st.seenLower[lower] != name {
		sink.Warn(Warning{Code: CodeValidation, Path: name, Message: fmt.Sprintf("name collides case-insensitively with %q", st.seenLower[lower])})
	} else {
		st.seenLower[lower] = name
	}

	if _, exists := out[name]; exists {
		return NewError(CodeValidation, "duplicate token name %q", name).WithPath(name).WithSource(sourceFile)
	}

	desc, _ := node["$description"].(string)
	var extensions map[string]any
	if ext, ok := node["$extensions"].(map[string]any); ok {
		extensions = maps.Clone(ext)
	}
	// Fold the supplemented-feature metadata keys into $extensions so
	// downstream consumers (lint layer-boundary rule, catalog generator) have
	// a single place to look regardless of whether the author wrote
	// $extensions.layer or the shorthand top-level $layer.
	for _, shorthand := range []string{"$layer", "$usage", "$avoid", "$customizable", "$responsive", "$property"} {
		raw, ok := node[shorthand]
		if !ok {
			continue
		}
		if extensions == nil {
			extensions = make(map[string]any)
		}
		key := strings.TrimPrefix(shorthand, "$")
		if _, exists := extensions[key]; !exists {
			extensions[key] = raw
		}
	}

	out[name] = &ResolvedToken{
		Name:          name,
		Path:          strings.Split(name, "."),
		Type:          tokenType,
		Value:         value,
		OriginalValue: value,
		Description:   desc,
		Deprecated:    node["$deprecated"],
		Extensions:    extensions,
		Min:           node["$min"],
		Max:           node["$max"],
	}
	if ref, ok := node["$ref"]; ok {
		out[name].Value = map[string]any{"$ref": ref}
		out[name].OriginalValue = out[name].Value
	}
	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
