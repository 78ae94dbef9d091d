// tokforge/cmd/tokforge/lint.go
package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tokforge/tokforge/pkg/lint"
	"github.com/tokforge/tokforge/pkg/tokens"
)

var lintCmd = &cobra.Command{
	Use:   "lint [resolver.json]",
	Short: "Run lint rules against every permutation",
	Long: `Lint composes every permutation a resolver document declares and runs
the builtin rule set (require-type, constraint-range, layer-boundaries,
contrast-minimum) against each one, exiting non-zero once the issue count
reaches --threshold (spec §6: exit 0 clean, 2 when issues >= threshold, 1 on
a framework-level failure).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

var lintFlags struct {
	threshold int
	disable   []string
}

func init() {
	lintCmd.Flags().IntVar(&lintFlags.threshold, "threshold", 1, "minimum issue count (of any severity) that fails the run")
	lintCmd.Flags().StringArrayVar(&lintFlags.disable, "disable", nil, "rule name to disable (e.g. builtin/contrast-minimum), repeatable")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resolverPath := cfg.Resolver
	if len(args) > 0 {
		resolverPath = args[0]
	}

	doc, err := tokens.LoadResolverDocument(resolverPath)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}

	composer := tokens.NewComposer(doc, tokens.ParseOptions{Mode: tokens.ModeWarn, Sink: tokens.StderrSink{}})
	permutations, err := tokens.ResolveAllPermutations(doc, composer)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}

	runner := lint.NewRunner(lint.Builtins()...)
	for _, name := range lintFlags.disable {
		runner.Configure(name, lint.SeverityOff)
	}

	result := runner.Run(permutations, permutationLabel, nil)

	for _, issue := range result.Issues {
		fmt.Printf("[%s] %s: %s: %s (%s)\n", severityLabel(issue.Severity), issue.Permutation, issue.Path, issue.Message, issue.Rule)
	}

	total := len(result.Issues)
	fmt.Printf("\n%d issue(s) (%d error, %d warn)\n", total, result.ErrorCount, result.WarningCount)

	if total >= lintFlags.threshold {
		return newExitError(2, "tokforge: lint threshold reached")
	}
	return nil
}

// severityLabel colors a lint severity the way deprecation markers are
// colored elsewhere: errors stand out in red, warnings in a softer gray.
func severityLabel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return pterm.Red(string(sev))
	case lint.SeverityWarn:
		return pterm.Gray(string(sev))
	default:
		return string(sev)
	}
}
