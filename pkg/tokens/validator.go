// tokforge/pkg/tokens/validator.go

package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tokforge/tokforge/pkg/colors"
)

// ValidationError represents a validation issue found by ValidateResolved.
type ValidationError struct {
	Path       string
	Message    string
	SourceFile string
}

func (v ValidationError) Error() string {
	if v.SourceFile != "" {
		return fmt.Sprintf("%s [%s]: %s", v.Path, v.SourceFile, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateResolved performs type-specific shape validation and $min/$max
// constraint checking over an already-composed, alias-resolved token map.
// Structural validation (forbidden characters, reserved keys, $extends
// cycles) already happened in the parser (C2); alias/reference cycles
// already happened in C1/C3. This pass catches the remaining class of
// error: a token whose final value doesn't match the shape its $type
// promises.
//
// Iterates names in sorted order (spec §3 "ascending locale-insensitive
// sort") so error output is deterministic.
func ValidateResolved(tokens ResolvedTokenMap) []ValidationError {
	var errs []ValidationError

	names := tokens.Names()
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for _, name := range names {
		tok := tokens[name]
		errs = append(errs, validateTokenShape(tok)...)
		errs = append(errs, validateTokenConstraints(tok)...)
	}

	return errs
}

func validateTokenShape(tok *ResolvedToken) []ValidationError {
	var err error
	switch tok.Type {
	case "color":
		err = validateColorFormat(tok.Value)
	case "dimension":
		err = validateDimension(tok.Value)
	case "number":
		err = validateNumber(tok.Value)
	case "fontFamily":
		err = validateFontFamily(tok.Value)
	case "effect":
		err = validateEffect(tok.Value)
	default:
		return nil
	}
	if err == nil {
		return nil
	}
	return []ValidationError{{
		Path:    tok.Name,
		Message: fmt.Sprintf("invalid %s: %s", tok.Type, err.Error()),
	}}
}

func validateTokenConstraints(tok *ResolvedToken) []ValidationError {
	constraint, err := ParseTokenConstraints(tok)
	if err != nil {
		return []ValidationError{{Path: tok.Name, Message: fmt.Sprintf("constraint error: %s", err.Error())}}
	}
	if constraint == nil {
		return nil
	}

	if strVal, ok := tok.Value.(string); ok && strings.Contains(strVal, "{") && strings.Contains(strVal, "}") {
		return nil // unresolved alias/expression; checked post-resolution by the caller
	}

	if err := constraint.CheckValue(tok.Value); err != nil {
		return []ValidationError{{Path: tok.Name, Message: fmt.Sprintf("constraint violation: %s", err.Error())}}
	}
	return nil
}

// validateColorFormat ensures a color value is a valid CSS color or DTCG
// color object.
func validateColorFormat(value any) error {
	if obj, ok := value.(map[string]any); ok {
		return validateColorObject(obj)
	}

	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string or color object, got %T", value)
	}

	if strings.Contains(strVal, "{") && strings.Contains(strVal, "}") {
		return nil
	}
	if strings.HasPrefix(strVal, "contrast(") ||
		strings.HasPrefix(strVal, "darken(") ||
		strings.HasPrefix(strVal, "lighten(") ||
		strings.HasPrefix(strVal, "shade(") {
		return nil
	}

	_, err := colors.Parse(strVal)
	return err
}

// validateColorObject checks the DTCG {colorSpace, components[3..4], alpha?}
// shape (spec §3's "Token value" color variant) and that colors.ParseObject
// can actually interpret it (known colorSpace, numeric components).
func validateColorObject(obj map[string]any) error {
	components, ok := obj["components"].([]any)
	if !ok {
		return fmt.Errorf("color object missing components array")
	}
	if len(components) < 3 || len(components) > 4 {
		return fmt.Errorf("color object components must have 3 or 4 entries, got %d", len(components))
	}
	if alpha, ok := obj["alpha"]; ok {
		switch alpha.(type) {
		case float64, int:
		default:
			return fmt.Errorf("color object alpha is not numeric: %T", alpha)
		}
	}
	_, err := colors.ParseObject(obj)
	return err
}

// validateDimension ensures a dimension value has valid format and units,
// or matches the DTCG {value, unit} object shape. Per the Open Question
// decision in DESIGN.md, only "px"/"rem" are accepted units for the
// `dimension` $type itself; the broader unit set ParseDimension accepts
// (em, %, vh, ...) remains available to generic arithmetic/constraints but
// is rejected here.
func validateDimension(value any) error {
	if obj, ok := value.(map[string]any); ok {
		unit, _ := obj["unit"].(string)
		if unit != "px" && unit != "rem" {
			return fmt.Errorf("dimension unit must be \"px\" or \"rem\", got %q", unit)
		}
		switch obj["value"].(type) {
		case float64, int:
			return nil
		default:
			return fmt.Errorf("dimension object value is not numeric: %T", obj["value"])
		}
	}

	strVal, ok := value.(string)
	if !ok {
		if num, ok := value.(float64); ok && num == 0 {
			return nil
		}
		if num, ok := value.(int); ok && num == 0 {
			return nil
		}
		return fmt.Errorf("expected string or dimension object, got %T", value)
	}

	if strings.Contains(strVal, "{") && strings.Contains(strVal, "}") {
		return nil
	}
	if strings.HasPrefix(strVal, "calc(") || strings.HasPrefix(strVal, "scale(") {
		return nil
	}

	dim, err := ParseDimension(strVal)
	if err != nil {
		return err
	}
	if dim.Unit != "px" && dim.Unit != "rem" && dim.Unit != "" {
		return fmt.Errorf("dimension unit must be \"px\" or \"rem\", got %q", dim.Unit)
	}
	return nil
}

// validateNumber ensures a value is numeric.
func validateNumber(value any) error {
	switch val := value.(type) {
	case float64, int:
		return nil
	case string:
		if strings.Contains(val, "{") && strings.Contains(val, "}") {
			return nil
		}
		if _, err := ParseDimension(val); err == nil {
			return nil
		}
		return fmt.Errorf("expected number, got string: %s", val)
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// validateFontFamily ensures a font family value is valid.
func validateFontFamily(value any) error {
	switch val := value.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("fontFamily cannot be empty")
		}
		return nil
	case []any:
		if len(val) == 0 {
			return fmt.Errorf("fontFamily array cannot be empty")
		}
		for i, item := range val {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("fontFamily array item %d is not a string", i)
			}
			if strings.TrimSpace(str) == "" {
				return fmt.Errorf("fontFamily array item %d is empty", i)
			}
		}
		return nil
	default:
		return fmt.Errorf("expected string or array, got %T", value)
	}
}

// validateEffect ensures an effect value is 0 or 1 (teacher's boolean-ish
// effect-toggle convention, kept for the opaque "effect" user type).
func validateEffect(value any) error {
	switch val := value.(type) {
	case float64:
		if val != 0 && val != 1 {
			return fmt.Errorf("effect must be 0 or 1, got %v", val)
		}
		return nil
	case int:
		if val != 0 && val != 1 {
			return fmt.Errorf("effect must be 0 or 1, got %v", val)
		}
		return nil
	case string:
		if strings.Contains(val, "{") && strings.Contains(val, "}") {
			return nil
		}
		if val != "0" && val != "1" {
			return fmt.Errorf("effect must be 0 or 1, got %s", val)
		}
		return nil
	default:
		return fmt.Errorf("expected 0 or 1, got %T", value)
	}
}
