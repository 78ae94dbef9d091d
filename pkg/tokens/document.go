// tokforge/pkg/tokens/document.go
package tokens

import (
	"encoding/json"
	"sort"
)

// ResolverVersion is the only resolver-document schema version this build
// understands (spec §3/§6).
const ResolverVersion = "2025.10"

// SourceRef is one entry of a Set's sources or a Modifier context's document
// list: either an inline token document or a {$ref} pointing at one.
type SourceRef struct {
	Ref    string         // non-empty when this entry is a {$ref: ...}
	Inline map[string]any // non-nil when this entry is an inline token document
}

func (s *SourceRef) UnmarshalJSON(data []byte) error {
	var withRef struct {
		Ref string `json:"$ref"`
	}
	if err := json.Unmarshal(data, &withRef); err == nil && withRef.Ref != "" {
		s.Ref = withRef.Ref
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	s.Inline = doc
	return nil
}

func (s SourceRef) MarshalJSON() ([]byte, error) {
	if s.Ref != "" {
		return json.Marshal(map[string]string{"$ref": s.Ref})
	}
	return json.Marshal(s.Inline)
}

// Set is a named bundle of one or more token documents loaded together.
type Set struct {
	Description string      `json:"description,omitempty"`
	Sources     []SourceRef `json:"sources"`
}

// Modifier is a named dimension (theme, density, platform) with alternative
// contexts, each carrying its own overlay document(s).
type Modifier struct {
	Description string                 `json:"description,omitempty"`
	Default     string                 `json:"default,omitempty"`
	Contexts    map[string][]SourceRef `json:"contexts"`
}

// OrderedContextNames returns context names in a stable, deterministic order
// (insertion order is not preserved by encoding/json maps, so callers that
// need "declaration order" for enumeration must supply it explicitly via
// ContextOrder; this is the fallback used when it's absent).
func (m Modifier) OrderedContextNames() []string {
	names := make([]string, 0, len(m.Contexts))
	for name := range m.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolutionStep is one entry of resolutionOrder: a $ref into either
// #/sets/NAME or #/modifiers/NAME.
type ResolutionStep struct {
	Ref string `json:"$ref"`
}

// ResolverDocument is the declarative description of token sources and
// modifier overlays (spec §3).
type ResolverDocument struct {
	Version         string              `json:"version"`
	Sets            map[string]Set      `json:"sets,omitempty"`
	Modifiers       map[string]Modifier `json:"modifiers,omitempty"`
	ResolutionOrder []ResolutionStep    `json:"resolutionOrder"`

	// BaseDir is the directory file references are resolved against. It is
	// populated by the loader, not unmarshaled from JSON.
	BaseDir string `json:"-"`

	// ModifierOrder preserves declaration order for modifiers and each
	// modifier's contexts, since Go map iteration is unordered and the
	// permutation engine (C6) must enumerate in "declaration order of
	// modifiers" (spec §4.6). Populated by the loader from a side-channel
	// ordered decode. If absent, modifier names fall back to map-iteration
	// order and context names to OrderedContextNames' sorted order.
	ModifierOrder  []string            `json:"-"`
	ContextOrder   map[string][]string `json:"-"`
}

// ModifierInputs maps a modifier name to a selected context name.
type ModifierInputs map[string]string

// Validate performs the minimal document-shape checks the loader relies on
// before any resolution is attempted (version tag, presence of
// resolutionOrder). Deeper validation belongs in Parse/Compose.
func (d *ResolverDocument) Validate() error {
	if d.Version != ResolverVersion {
		return NewError(CodeConfiguration, "resolver document version %q is not supported (expected %q)", d.Version, ResolverVersion)
	}
	if len(d.ResolutionOrder) == 0 {
		return NewError(CodeConfiguration, "resolver document has an empty resolutionOrder")
	}
	return nil
}
