package tokens

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// RefCode distinguishes the two ways a $ref can fail to resolve, so callers
// can report "the file itself is missing" separately from "the file loaded
// fine but the pointer inside it doesn't exist".
type RefCode string

const (
	RefNoDocument RefCode = "REF_NO_DOCUMENT"
	RefNotFound   RefCode = "REF_NOT_FOUND"
)

// ReferenceResolver resolves $ref entries (file path + optional RFC 6901
// JSON pointer fragment) against a shared, cached pool of parsed documents.
// One instance is created per build and shared across every set/modifier
// load and every permutation (spec §1.1/§1.6), so a document referenced from
// multiple sets is only read and parsed once.
//
// Grounded on the teacher's single-file loader (pkg/tokens/loader.go
// loadFile/ParseJSON) generalized with a cache, cross-file $ref following,
// and JSON-pointer fragment lookup, none of which the teacher needed since
// it only ever loaded whole files from a fixed directory layout.
type ReferenceResolver struct {
	baseDir string

	mu    sync.Mutex
	cache map[string]map[string]any // canonical absolute path -> parsed root
}

// NewReferenceResolver creates a resolver rooted at baseDir, the directory a
// bare (non-absolute) $ref path is resolved relative to.
func NewReferenceResolver(baseDir string) *ReferenceResolver {
	return &ReferenceResolver{
		baseDir: baseDir,
		cache:   make(map[string]map[string]any),
	}
}

// splitRef splits a $ref string into its file component and JSON-pointer
// fragment, e.g. "colors.json#/palette/blue" -> ("colors.json", "/palette/blue").
// A ref with no "#" names a whole-document reference.
func splitRef(ref string) (file, pointer string) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ref, ""
	}
	file = ref[:idx]
	pointer = ref[idx+1:]
	pointer, _ = url.PathUnescape(pointer)
	return file, pointer
}

// canonicalPath resolves a possibly-relative file path against currentFile's
// directory (if set) or the resolver's baseDir, and cleans it so the same
// document reached two different ways shares one cache entry.
func (r *ReferenceResolver) canonicalPath(file, currentFile string) string {
	if file == "" {
		return filepath.Clean(currentFile)
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	dir := r.baseDir
	if currentFile != "" {
		dir = filepath.Dir(currentFile)
	}
	return filepath.Clean(filepath.Join(dir, file))
}

// load returns the parsed root of path, reading and parsing it at most once
// per resolver instance.
func (r *ReferenceResolver) load(path string) (map[string]any, error) {
	r.mu.Lock()
	if doc, ok := r.cache[path]; ok {
		r.mu.Unlock()
		return doc, nil
	}
	r.mu.Unlock()

	dict, err := ReadTokenFile(path)
	if err != nil {
		if coded, ok := err.(*Error); ok {
			return nil, &Error{Code: CodeFileOperation, Path: string(RefNoDocument), SourceFile: path, Message: coded.Message}
		}
		return nil, err
	}

	r.mu.Lock()
	r.cache[path] = dict.Root
	r.mu.Unlock()
	return dict.Root, nil
}

// pointerLookup walks a parsed document by RFC 6901 JSON pointer. An empty
// pointer (or "/") returns the whole document.
func pointerLookup(root map[string]any, pointer string, sourceFile string) (any, error) {
	if pointer == "" {
		return root, nil
	}
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return root, nil
	}

	var cur any = root
	segments := strings.Split(pointer, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")

		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, &Error{
					Code:       CodeTokenReference,
					Path:       string(RefNotFound),
					SourceFile: sourceFile,
					Message:    "JSON pointer segment \"" + seg + "\" not found at /" + strings.Join(segments[:i+1], "/"),
				}
			}
			cur = v
		case []any:
			idx, convErr := strconv.Atoi(seg)
			if convErr != nil || idx < 0 || idx >= len(node) {
				return nil, &Error{
					Code:       CodeTokenReference,
					Path:       string(RefNotFound),
					SourceFile: sourceFile,
					Message:    "JSON pointer index \"" + seg + "\" out of range",
				}
			}
			cur = node[idx]
		default:
			return nil, &Error{
				Code:       CodeTokenReference,
				Path:       string(RefNotFound),
				SourceFile: sourceFile,
				Message:    "JSON pointer descends into a scalar at /" + strings.Join(segments[:i+1], "/"),
			}
		}
	}
	return cur, nil
}

// Resolve loads ref (relative to currentFile, or the resolver's baseDir if
// currentFile is empty) and returns the value at its JSON-pointer fragment,
// or the whole document if the ref has no fragment.
func (r *ReferenceResolver) Resolve(ref string, currentFile string) (any, error) {
	file, pointer := splitRef(ref)
	path := r.canonicalPath(file, currentFile)

	root, err := r.load(path)
	if err != nil {
		return nil, err
	}
	return pointerLookup(root, pointer, path)
}

// ResolveDeep walks node looking for {"$ref": "..."} entries at any depth and
// replaces them in place with the referenced value, merged with any sibling
// keys present alongside the $ref as a local shallow override (spec §1.1's
// "local overrides"). visited guards against a $ref cycle across files;
// ResolveDeep is called fresh (nil visited) at each top-level entry point.
func (r *ReferenceResolver) ResolveDeep(node any, currentFile string, visited map[string]bool) (any, error) {
	if visited == nil {
		visited = make(map[string]bool)
	}

	switch v := node.(type) {
	case map[string]any:
		refVal, hasRef := v["$ref"]
		if !hasRef {
			out := make(map[string]any, len(v))
			for k, child := range v {
				resolved, err := r.ResolveDeep(child, currentFile, visited)
				if err != nil {
					return nil, err
				}
				out[k] = resolved
			}
			return out, nil
		}

		refStr, ok := refVal.(string)
		if !ok {
			return nil, NewError(CodeTokenReference, "$ref value must be a string")
		}

		file, _ := splitRef(refStr)
		cacheKey := r.canonicalPath(file, currentFile) + "#" + refStr
		if visited[cacheKey] {
			return nil, NewError(CodeCircularReference, "circular $ref: %s", refStr)
		}
		visited[cacheKey] = true

		target, err := r.Resolve(refStr, currentFile)
		if err != nil {
			return nil, err
		}

		nextFile := currentFile
		if file != "" {
			nextFile = r.canonicalPath(file, currentFile)
		}
		resolvedTarget, err := r.ResolveDeep(target, nextFile, visited)
		if err != nil {
			return nil, err
		}
		delete(visited, cacheKey)

		targetMap, targetIsMap := resolvedTarget.(map[string]any)
		if !targetIsMap {
			return resolvedTarget, nil
		}

		merged := make(map[string]any, len(targetMap)+len(v))
		for k, val := range targetMap {
			merged[k] = val
		}
		for k, val := range v {
			if k == "$ref" {
				continue
			}
			resolvedOverride, err := r.ResolveDeep(val, currentFile, visited)
			if err != nil {
				return nil, err
			}
			merged[k] = resolvedOverride
		}
		return merged, nil

	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			resolved, err := r.ResolveDeep(child, currentFile, visited)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return v, nil
	}
}

// ResolveSource loads one SourceRef (inline document or file $ref) against
// this resolver, returning a Dictionary ready for parsing (C2).
func (r *ReferenceResolver) ResolveSource(src SourceRef, currentFile string) (*Dictionary, error) {
	if src.Inline != nil {
		resolved, err := r.ResolveDeep(src.Inline, currentFile, nil)
		if err != nil {
			return nil, err
		}
		root, _ := resolved.(map[string]any)
		return &Dictionary{Root: root, SourceFiles: make(map[string]string)}, nil
	}

	file, pointer := splitRef(src.Ref)
	path := r.canonicalPath(file, currentFile)
	root, err := r.load(path)
	if err != nil {
		return nil, err
	}

	target, err := pointerLookup(root, pointer, path)
	if err != nil {
		return nil, err
	}
	resolved, err := r.ResolveDeep(target, path, nil)
	if err != nil {
		return nil, err
	}
	resolvedRoot, ok := resolved.(map[string]any)
	if !ok {
		return nil, NewError(CodeTokenReference, "%s does not resolve to a document", src.Ref).WithSource(path)
	}

	dict := &Dictionary{Root: resolvedRoot, SourceFiles: make(map[string]string)}
	annotateSourceFileRecursive(dict, dict.Root, "", path)
	return dict, nil
}
