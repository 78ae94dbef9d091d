// tokforge/pkg/lint/runner_test.go
package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokforge/tokforge/pkg/tokens"
)

type fakeRule struct {
	name string
	sev  Severity
	fn   func(Context) []Issue
}

func (r fakeRule) Name() string             { return r.name }
func (r fakeRule) DefaultSeverity() Severity { return r.sev }
func (r fakeRule) Check(ctx Context) []Issue { return r.fn(ctx) }

func permWithName(name string, val interface{}) tokens.Permutation {
	return tokens.Permutation{
		Tokens: tokens.ResolvedTokenMap{
			name: {Name: name, Type: "color", Value: val},
		},
	}
}

func name(_ tokens.Permutation) string { return "base" }

func TestRunner_AggregatesSeverityCounts(t *testing.T) {
	errRule := fakeRule{name: "r/err", sev: SeverityError, fn: func(Context) []Issue {
		return []Issue{{Path: "a"}}
	}}
	warnRule := fakeRule{name: "r/warn", sev: SeverityWarn, fn: func(Context) []Issue {
		return []Issue{{Path: "b"}, {Path: "c"}}
	}}

	runner := NewRunner(errRule, warnRule)
	result := runner.Run([]tokens.Permutation{permWithName("color.x", "#fff")}, name, nil)

	require.Len(t, result.Issues, 3)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 2, result.WarningCount)
	for _, issue := range result.Issues {
		assert.Equal(t, "base", issue.Permutation)
	}
}

func TestRunner_ConfigureOverridesSeverity(t *testing.T) {
	rule := fakeRule{name: "r/x", sev: SeverityWarn, fn: func(Context) []Issue {
		return []Issue{{Path: "a"}}
	}}
	runner := NewRunner(rule)
	runner.Configure("r/x", SeverityError)

	result := runner.Run([]tokens.Permutation{permWithName("color.x", "#fff")}, name, nil)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, SeverityError, result.Issues[0].Severity)
	assert.Equal(t, 1, result.ErrorCount)
}

func TestRunner_SeverityOffDisablesRule(t *testing.T) {
	called := false
	rule := fakeRule{name: "r/x", sev: SeverityWarn, fn: func(Context) []Issue {
		called = true
		return []Issue{{Path: "a"}}
	}}
	runner := NewRunner(rule)
	runner.Configure("r/x", SeverityOff)

	result := runner.Run([]tokens.Permutation{permWithName("color.x", "#fff")}, name, nil)
	assert.Empty(t, result.Issues)
	assert.False(t, called, "a disabled rule's Check should not run")
}

func TestRunner_RunsEveryPermutation(t *testing.T) {
	rule := fakeRule{name: "r/x", sev: SeverityError, fn: func(ctx Context) []Issue {
		return []Issue{{Path: ctx.PermutationName}}
	}}
	runner := NewRunner(rule)
	perms := []tokens.Permutation{
		{ModifierInputs: nil, Tokens: tokens.ResolvedTokenMap{}},
		{ModifierInputs: tokens.ModifierInputs{"theme": "dark"}, Tokens: tokens.ResolvedTokenMap{}},
	}
	labels := []string{"base", "theme=dark"}
	i := 0
	result := runner.Run(perms, func(tokens.Permutation) string {
		label := labels[i]
		i++
		return label
	}, nil)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "base", result.Issues[0].Path)
	assert.Equal(t, "theme=dark", result.Issues[1].Path)
}
