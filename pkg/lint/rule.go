// tokforge/pkg/lint/rule.go
package lint

import "github.com/tokforge/tokforge/pkg/tokens"

// Severity is how seriously a lint issue should be treated (spec §6: "issues
// >= configured threshold" drives the CLI's exit code).
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityOff   Severity = "off"
)

// Issue is one finding reported by a Rule against a specific permutation.
type Issue struct {
	Rule       string
	Severity   Severity
	Path       string
	Permutation string
	Message    string
}

// Context is what a Rule sees when it runs: one already-composed, already
// processor-chained permutation plus the supplemented-feature side channels
// a rule might need (components, for layer-boundary checks that cross
// token/component references).
type Context struct {
	PermutationName string
	Tokens          tokens.ResolvedTokenMap
	Components      map[string]tokens.ComponentDefinition
}

// Rule is one lint check. Name is namespaced "builtin/rule-name" the way an
// ESLint-style plugin rule is, so a lint config can address it unambiguously
// (spec supplement: "$min/$max as lint rule", "layer-reference validation as
// lint rule", "WCAG contrast as transform+lint rule").
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	Check(ctx Context) []Issue
}
