// tokforge/pkg/tokens/metadata.go
package tokens

// TokenMetadata holds rich metadata for a token
type TokenMetadata struct {
	Path         string      `json:"path"`
	Value        any `json:"value"`
	Type         string      `json:"type,omitempty"`
	Description  string      `json:"description,omitempty"`
	Usage        []string    `json:"usage,omitempty"`
	Avoid        string      `json:"avoid,omitempty"`
	Deprecated   any `json:"deprecated,omitempty"`
	Customizable bool        `json:"customizable,omitempty"`
	SourceFile   string      `json:"source_file,omitempty"`
}

// ExtractResolvedMetadata builds the catalog-facing metadata view from an
// already-composed ResolvedTokenMap: the catalog/manifest renderer (§4
// "supplemented features") runs after composition, where tokens no longer
// carry a raw tree to walk, only their flattened $extensions.
func ExtractResolvedMetadata(tokens ResolvedTokenMap) map[string]*TokenMetadata {
	result := make(map[string]*TokenMetadata, len(tokens))
	for name, tok := range tokens {
		meta := &TokenMetadata{
			Path:       name,
			Value:      tok.Value,
			Type:       tok.Type,
			Description: tok.Description,
			Deprecated: tok.Deprecated,
		}
		if tok.Extensions != nil {
			switch u := tok.Extensions["usage"].(type) {
			case string:
				meta.Usage = []string{u}
			case []any:
				for _, item := range u {
					if s, ok := item.(string); ok {
						meta.Usage = append(meta.Usage, s)
					}
				}
			}
			if avoid, ok := tok.Extensions["avoid"].(string); ok {
				meta.Avoid = avoid
			}
			if customizable, ok := tok.Extensions["customizable"].(bool); ok {
				meta.Customizable = customizable
			}
		}
		result[name] = meta
	}
	return result
}
