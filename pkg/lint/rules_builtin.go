// tokforge/pkg/lint/rules_builtin.go
package lint

import (
	"fmt"

	"github.com/tokforge/tokforge/pkg/colors"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// RequireType flags any token missing a $type, since every renderer branches
// on it (spec §1/§6 "builtin/require-type").
type RequireType struct{}

func (RequireType) Name() string             { return "builtin/require-type" }
func (RequireType) DefaultSeverity() Severity { return SeverityError }
func (RequireType) Check(ctx Context) []Issue {
	var issues []Issue
	for _, name := range ctx.Tokens.Names() {
		if ctx.Tokens[name].Type == "" {
			issues = append(issues, Issue{Path: name, Message: "token has no $type"})
		}
	}
	return issues
}

// ConstraintRange re-checks every token carrying $min/$max against its final
// composed value, surfacing a constraint violation as a lint issue rather
// than (only) a hard validation error (spec supplement: "$min/$max
// expansion as lint rule").
type ConstraintRange struct{}

func (ConstraintRange) Name() string             { return "builtin/constraint-range" }
func (ConstraintRange) DefaultSeverity() Severity { return SeverityError }
func (ConstraintRange) Check(ctx Context) []Issue {
	var issues []Issue
	for _, name := range ctx.Tokens.Names() {
		tok := ctx.Tokens[name]
		constraint, err := tokens.ParseTokenConstraints(tok)
		if err != nil {
			issues = append(issues, Issue{Path: name, Message: fmt.Sprintf("constraint error: %s", err)})
			continue
		}
		if constraint == nil {
			continue
		}
		if err := constraint.CheckValue(tok.Value); err != nil {
			issues = append(issues, Issue{Path: name, Message: fmt.Sprintf("constraint violation: %s", err)})
		}
	}
	return issues
}

// LayerBoundaries flags any token whose alias chain reaches into a layer it
// is not permitted to reference (spec supplement: "layer-reference
// validation as lint rule"), wrapping ValidateResolvedLayers (pkg/tokens).
type LayerBoundaries struct{}

func (LayerBoundaries) Name() string             { return "builtin/layer-boundaries" }
func (LayerBoundaries) DefaultSeverity() Severity { return SeverityError }
func (LayerBoundaries) Check(ctx Context) []Issue {
	violations := tokens.ValidateResolvedLayers(ctx.Tokens)
	issues := make([]Issue, len(violations))
	for i, v := range violations {
		issues[i] = Issue{Path: v.TokenPath, Message: v.Error()}
	}
	return issues
}

// ContrastMinimum flags any color token carrying an
// $extensions.contrastAgainst reference whose resolved value fails the
// referenced WCAG ratio (spec supplement: "WCAG contrast as transform+lint
// rule"); the extension's "minRatio" defaults to 4.5 (WCAG AA, normal text)
// when absent.
type ContrastMinimum struct{}

func (ContrastMinimum) Name() string             { return "builtin/contrast-minimum" }
func (ContrastMinimum) DefaultSeverity() Severity { return SeverityWarn }
func (ContrastMinimum) Check(ctx Context) []Issue {
	var issues []Issue
	for _, name := range ctx.Tokens.Names() {
		tok := ctx.Tokens[name]
		if tok.Type != "color" || tok.Extensions == nil {
			continue
		}
		ref, ok := tok.Extensions["contrastAgainst"].(string)
		if !ok || ref == "" {
			continue
		}
		bgTok, ok := ctx.Tokens[ref]
		if !ok {
			issues = append(issues, Issue{Path: name, Message: fmt.Sprintf("contrastAgainst references unknown token %q", ref)})
			continue
		}

		fg, ok := parseTokenColor(tok.Value)
		if !ok {
			continue
		}
		bg, ok := parseTokenColor(bgTok.Value)
		if !ok {
			continue
		}

		minRatio := 4.5
		if m, ok := tok.Extensions["minRatio"].(float64); ok && m > 0 {
			minRatio = m
		}
		if !colors.SufficientContrast(fg, bg, minRatio) {
			issues = append(issues, Issue{
				Path:    name,
				Message: fmt.Sprintf("contrast against %q is %.2f, below required %.2f", ref, colors.ContrastRatio(fg, bg), minRatio),
			})
		}
	}
	return issues
}

func parseTokenColor(val any) (colors.Color, bool) {
	switch v := val.(type) {
	case string:
		c, err := colors.Parse(v)
		return c, err == nil
	case map[string]any:
		c, err := colors.ParseObject(v)
		return c, err == nil
	default:
		return colors.Color{}, false
	}
}

// Builtins returns every builtin rule in a stable, deliberate order:
// structural checks (type/constraints) before cross-reference checks
// (layers) before perceptual checks (contrast).
func Builtins() []Rule {
	return []Rule{
		RequireType{},
		ConstraintRange{},
		LayerBoundaries{},
		ContrastMinimum{},
	}
}
