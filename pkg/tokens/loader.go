package tokens

import (
	"encoding/json"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseJSON parses JSON data into a Dictionary. Kept from the teacher's
// pkg/tokens/loader.go.
func ParseJSON(r io.Reader) (*Dictionary, error) {
	dec := json.NewDecoder(r)
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, NewError(CodeConfiguration, "invalid token document: %s", err.Error())
	}
	return &Dictionary{
		Root:        root,
		SourceFiles: make(map[string]string),
	}, nil
}

// ParseJSONBytes is ParseJSON over an already-read byte slice, for callers
// such as ReadTokenFile that read the whole file before parsing it.
func ParseJSONBytes(data []byte) (*Dictionary, error) {
	return ParseJSON(strings.NewReader(string(data)))
}

// WriteJSON writes the dictionary to an io.Writer.
func (d *Dictionary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.Root)
}

// ReadTokenFile loads and parses one token document file from disk,
// annotating every leaf with its source file path (teacher's
// Loader.loadFile + annotateSourceFile, unchanged in spirit).
func ReadTokenFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(CodeFileOperation, "%s", err.Error()).WithSource(path)
	}
	dict, parseErr := ParseJSONBytes(data)
	if parseErr != nil {
		if coded, ok := parseErr.(*Error); ok {
			return nil, coded.WithSource(path)
		}
		return nil, parseErr
	}
	annotateSourceFileRecursive(dict, dict.Root, "", path)
	return dict, nil
}

// annotateSourceFileRecursive recursively marks all tokens in the dictionary
// with their source file.
func annotateSourceFileRecursive(dict *Dictionary, node map[string]any, currentPath, sourceFile string) {
	if IsToken(node) {
		if currentPath != "" {
			dict.SourceFiles[currentPath] = sourceFile
		}
		return
	}

	for key, val := range node {
		if strings.HasPrefix(key, "$") {
			continue
		}

		childMap, ok := val.(map[string]any)
		if !ok {
			continue
		}

		childPath := key
		if currentPath != "" {
			childPath = currentPath + "." + key
		}

		annotateSourceFileRecursive(dict, childMap, childPath, sourceFile)
	}
}

// Merge merges another dictionary into this one (deep merge).
func (d *Dictionary) Merge(other *Dictionary) error {
	if err := deepMerge(d.Root, other.Root, ""); err != nil {
		return err
	}
	maps.Copy(d.SourceFiles, other.SourceFiles)
	return nil
}

// MergeWithPath is like Merge but allows controlling conflict warnings; the
// warning itself goes through sink rather than being written directly, so
// the same merge logic serves library callers (ModeOff/collected) as well as
// CLI callers (stderr).
func (d *Dictionary) MergeWithPath(other *Dictionary, mode ValidationMode, sink Sink) error {
	return deepMergeWithWarnings(d.Root, other.Root, "", mode, sink)
}

func deepMerge(dst, src map[string]any, currentPath string) error {
	return deepMergeWithWarnings(dst, src, currentPath, ModeOff, nil)
}

func deepMergeWithWarnings(dst, src map[string]any, currentPath string, mode ValidationMode, sink Sink) error {
	for key, srcVal := range src {
		path := key
		if currentPath != "" {
			path = currentPath + "." + key
		}

		isMetadataKey := strings.HasPrefix(key, "$")

		dstVal, collides := dst[key]
		if !collides {
			dst[key] = srcVal
			continue
		}

		dstMap, dstOk := dstVal.(map[string]any)
		srcMap, srcOk := srcVal.(map[string]any)

		if dstOk && srcOk {
			isDstToken := IsToken(dstMap)
			isSrcToken := IsToken(srcMap)

			if isDstToken || isSrcToken {
				if mode != ModeOff && !isMetadataKey {
					if err := handle(mode, sink, NewError(CodeValidation, "token redefined (overwriting)").WithPath(path)); err != nil {
						return err
					}
				}
				dst[key] = srcVal
			} else if err := deepMergeWithWarnings(dstMap, srcMap, path, mode, sink); err != nil {
				return err
			}
		} else {
			if mode != ModeOff && !isMetadataKey {
				if err := handle(mode, sink, NewError(CodeValidation, "token redefined (overwriting %T with %T)", dstVal, srcVal).WithPath(path)); err != nil {
					return err
				}
			}
			dst[key] = srcVal
		}
	}
	return nil
}

// LoadResolverDocument reads and decodes a resolver document from disk,
// recording its base directory (for later file-$ref resolution) and the
// declaration order of its modifiers/contexts, which encoding/json's
// map[string]T decoding otherwise discards.
//
// Order extraction is grounded on bennypowers-cem's use of
// github.com/tidwall/gjson for source-order-preserving JSON reads; gjson's
// Result.ForEach walks object keys in the order they appear in the source
// text, which a plain json.Unmarshal into a map cannot give us.
func LoadResolverDocument(path string) (*ResolverDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(CodeFileOperation, "%s", err.Error()).WithSource(path)
	}

	var doc ResolverDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewError(CodeConfiguration, "invalid resolver document: %s", err.Error()).WithSource(path)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.BaseDir = filepath.Dir(path)
	doc.ModifierOrder = orderedObjectKeys(data, "modifiers")
	doc.ContextOrder = make(map[string][]string, len(doc.Modifiers))
	for _, name := range doc.ModifierOrder {
		doc.ContextOrder[name] = orderedObjectKeys(data, "modifiers."+gjsonEscape(name)+".contexts")
	}

	return &doc, nil
}

// orderedObjectKeys returns the keys of the JSON object at gjson path in
// source order, or nil if the path isn't an object.
func orderedObjectKeys(data []byte, path string) []string {
	result := gjson.GetBytes(data, path)
	if !result.IsObject() {
		return nil
	}
	var keys []string
	result.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// gjsonEscape escapes characters gjson treats specially in a path segment so
// a literal key (e.g. a modifier named "a.b") isn't parsed as nested paths.
func gjsonEscape(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '.' || key[i] == '*' || key[i] == '?' {
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}

// ModifierNames returns modifiers in declaration order, falling back to
// map-iteration order if ModifierOrder wasn't populated (e.g. a document
// built programmatically rather than loaded from disk).
func (d *ResolverDocument) ModifierNames() []string {
	if len(d.ModifierOrder) > 0 {
		return d.ModifierOrder
	}
	names := make([]string, 0, len(d.Modifiers))
	for name := range d.Modifiers {
		names = append(names, name)
	}
	return names
}

// ContextNames returns a modifier's context names in declaration order.
func (d *ResolverDocument) ContextNames(modifier string) []string {
	if order, ok := d.ContextOrder[modifier]; ok && len(order) > 0 {
		return order
	}
	mod, ok := d.Modifiers[modifier]
	if !ok {
		return nil
	}
	return mod.OrderedContextNames()
}
