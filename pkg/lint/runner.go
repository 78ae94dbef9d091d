// tokforge/pkg/lint/runner.go
package lint

import "github.com/tokforge/tokforge/pkg/tokens"

// Result is the outcome of running a set of rules across a build's
// permutations.
type Result struct {
	Issues       []Issue
	ErrorCount   int
	WarningCount int
}

// Runner holds the rule set and per-rule severity overrides a lint run uses.
type Runner struct {
	rules      []Rule
	severities map[string]Severity // rule name -> override, absent means DefaultSeverity()
}

// NewRunner builds a Runner from rules, run in the order given — declared
// order is execution order, so a rule that depends on an earlier rule's
// side effects (none currently do, but the ordering guarantee is load-bearing
// for reproducible output) can rely on it.
func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: rules, severities: make(map[string]Severity)}
}

// Configure overrides a named rule's severity ("builtin/require-type" ->
// SeverityError, etc.), or disables it entirely with SeverityOff.
func (r *Runner) Configure(ruleName string, sev Severity) {
	r.severities[ruleName] = sev
}

func (r *Runner) severityFor(rule Rule) Severity {
	if sev, ok := r.severities[rule.Name()]; ok {
		return sev
	}
	return rule.DefaultSeverity()
}

// Run checks every permutation against every configured rule, stamping each
// issue with the rule's effective severity and the permutation it came from.
func (r *Runner) Run(perms []tokens.Permutation, permName func(tokens.Permutation) string, components map[string]tokens.ComponentDefinition) Result {
	var result Result
	for _, perm := range perms {
		name := permName(perm)
		ctx := Context{PermutationName: name, Tokens: perm.Tokens, Components: components}
		for _, rule := range r.rules {
			sev := r.severityFor(rule)
			if sev == SeverityOff {
				continue
			}
			for _, issue := range rule.Check(ctx) {
				issue.Rule = rule.Name()
				issue.Severity = sev
				issue.Permutation = name
				result.Issues = append(result.Issues, issue)
				switch sev {
				case SeverityError:
					result.ErrorCount++
				case SeverityWarn:
					result.WarningCount++
				}
			}
		}
	}
	return result
}
