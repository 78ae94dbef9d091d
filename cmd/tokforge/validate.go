// tokforge/cmd/tokforge/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokforge/tokforge/pkg/tokens"
)

var validateCmd = &cobra.Command{
	Use:   "validate [resolver.json]",
	Short: "Validate every permutation's composed tokens",
	Long: `Validate composes every permutation a resolver document declares and
checks each one for type correctness (§1.9's value-shape rules per $type)
and, with --strict-layers, layer reference rules:
  brand layer: can only use raw values (no references)
  semantic layer: can reference brand tokens
  component layer: can only reference semantic tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateFlags struct {
	strictLayers bool
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlags.strictLayers, "strict-layers", false, "enforce layer reference rules (brand -> semantic -> component)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	hasErrors := false
	for _, perm := range permutations {
		label := permutationLabel(perm)
		fmt.Printf("Checking %s...\n", label)

		clean := true

		errs := tokens.ValidateResolved(perm.Tokens)
		if len(errs) > 0 {
			hasErrors, clean = true, false
			for _, e := range errs {
				fmt.Printf("  [Error] %s\n", e)
			}
		}

		if validateFlags.strictLayers {
			violations := tokens.ValidateResolvedLayers(perm.Tokens)
			if len(violations) > 0 {
				hasErrors, clean = true, false
				for _, v := range violations {
					fmt.Printf("  [Error] %s\n", v)
				}
			}
		}

		if clean {
			fmt.Println("  OK")
		}
	}

	if hasErrors {
		return newExitError(1, "tokforge: validation failed")
	}
	fmt.Println("\nValidation passed!")
	return nil
}

// permutationLabel names a permutation for validate/lint output:
// "base permutation" when it has no modifier selections, otherwise its
// name=context pairs joined by ", " (e.g. "theme=dark, density=compact"),
// in map iteration order.
func permutationLabel(perm tokens.Permutation) string {
	if len(perm.ModifierInputs) == 0 {
		return "base permutation"
	}
	out := ""
	for name, context := range perm.ModifierInputs {
		if out != "" {
			out += ", "
		}
		out += name + "=" + context
	}
	return out
}
