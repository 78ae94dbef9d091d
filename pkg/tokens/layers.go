// tokforge/pkg/tokens/layers.go
package tokens

import "fmt"

// Layer represents a design system layer
type Layer string

const (
	LayerBrand     Layer = "brand"
	LayerSemantic  Layer = "semantic"
	LayerComponent Layer = "component"
)

// LayerOrder defines the reference hierarchy (lower index can't reference higher)
var LayerOrder = map[Layer]int{
	LayerBrand:     0,
	LayerSemantic:  1,
	LayerComponent: 2,
}

// CanReference returns true if fromLayer is allowed to reference toLayer
// Rules:
// - brand: can reference brand only
// - semantic: can reference brand and semantic
// - component: can reference any of the three layers
func CanReference(fromLayer, toLayer Layer) bool {
	fromOrder, fromOk := LayerOrder[fromLayer]
	toOrder, toOk := LayerOrder[toLayer]

	// Unknown layers are permissive
	if !fromOk || !toOk {
		return true
	}

	// Can reference same or lower layer
	return fromOrder >= toOrder
}

// LayerViolation represents a layer reference violation
type LayerViolation struct {
	TokenPath   string
	TokenLayer  Layer
	RefPath     string
	RefLayer    Layer
	SourceFile  string
}

func (v LayerViolation) Error() string {
	msg := fmt.Sprintf("%s [%s] cannot reference %s [%s]: layer violation",
		v.TokenPath, v.TokenLayer, v.RefPath, v.RefLayer)
	if v.SourceFile != "" {
		msg = fmt.Sprintf("%s [%s] [%s] cannot reference %s [%s]: layer violation",
			v.TokenPath, v.TokenLayer, v.SourceFile, v.RefPath, v.RefLayer)
	}
	return msg
}

// LayersFromResolved extracts the token-path -> Layer map from an
// already-composed ResolvedTokenMap, using each token's $extensions.layer
// (the DTCG-shaped home for a $layer annotation once it has passed through
// the flattener) with a fallback to a top-level "layer" extension key.
func LayersFromResolved(tokens ResolvedTokenMap) map[string]Layer {
	layers := make(map[string]Layer)
	for name, tok := range tokens {
		if tok.Extensions == nil {
			continue
		}
		if layer, ok := tok.Extensions["layer"].(string); ok && layer != "" {
			layers[name] = Layer(layer)
		}
	}
	return layers
}

// ValidateResolvedLayers checks every alias reference recorded in
// tok.OriginalValue against the layer hierarchy, using the already-composed
// token map instead of the pre-alias-resolution raw tree. This is the form
// the lint runner (C10) wires up, since by the time lint rules run the
// pipeline no longer carries per-source-set raw Dictionary trees.
func ValidateResolvedLayers(tokens ResolvedTokenMap) []LayerViolation {
	layers := LayersFromResolved(tokens)
	var violations []LayerViolation

	names := tokens.Names()
	for _, name := range names {
		tok := tokens[name]
		fromLayer, ok := layers[name]
		if !ok {
			continue
		}

		strVal, ok := tok.OriginalValue.(string)
		if !ok {
			continue
		}

		for _, ref := range tokenRefRegex.FindAllStringSubmatch(strVal, -1) {
			refPath := ref[1]
			toLayer, ok := layers[refPath]
			if !ok {
				continue
			}
			if !CanReference(fromLayer, toLayer) {
				violations = append(violations, LayerViolation{
					TokenPath:  name,
					TokenLayer: fromLayer,
					RefPath:    refPath,
					RefLayer:   toLayer,
				})
			}
		}
	}

	return violations
}
