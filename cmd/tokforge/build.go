// tokforge/cmd/tokforge/build.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tbuild "github.com/tokforge/tokforge/pkg/build"
)

var buildCmd = &cobra.Command{
	Use:   "build [resolver.json]",
	Short: "Compose every permutation and render build output",
	Long: `Build composes a resolver document's sets and modifier overlays into
every permutation it declares, runs each through the default processor
chain, and renders the result with a built-in renderer.

Formats: css (default), tailwind, json, js, ios, android
Presets: bundle (default), standalone, modifier`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

var buildFlags struct {
	format             string
	preset             string
	output             string
	modifiers          []string
	category           string
	customizableOnly   bool
	preserveReferences bool
}

func init() {
	buildCmd.Flags().StringVarP(&buildFlags.format, "format", "f", "", "output format: css, tailwind, json, js, ios, android (config default: css)")
	buildCmd.Flags().StringVar(&buildFlags.preset, "preset", "", "bundle, standalone, or modifier (default: bundle)")
	buildCmd.Flags().StringVarP(&buildFlags.output, "output", "o", "", "output directory (config default: dist)")
	buildCmd.Flags().StringArrayVar(&buildFlags.modifiers, "modifier", nil, "pin a modifier to one context (name=context), repeatable; default builds every permutation")
	buildCmd.Flags().StringVar(&buildFlags.category, "category", "", "scope the json renderer's catalog to one token category")
	buildCmd.Flags().BoolVar(&buildFlags.customizableOnly, "customizable-only", false, "only include tokens marked $customizable: true (json renderer)")
	buildCmd.Flags().BoolVar(&buildFlags.preserveReferences, "preserve-references", false, "leave alias tokens as references (e.g. var(--…) in CSS) instead of inlining their resolved value")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	resolverPath := cfg.Resolver
	if len(args) > 0 {
		resolverPath = args[0]
	}

	format := firstNonEmpty(buildFlags.format, cfg.Format, "css")
	renderer, err := rendererFor(format)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}
	preset, err := presetFor(buildFlags.preset)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}
	modifiers, err := parseModifierFlags(buildFlags.modifiers)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}
	if modifiers == nil {
		modifiers = cfg.Modifiers
	}

	outputDir := firstNonEmpty(buildFlags.output, cfg.OutputDir, "dist")
	category := buildFlags.category
	customizableOnly := buildFlags.customizableOnly || cfg.CustomizableOnly
	preserveReferences := buildFlags.preserveReferences || cfg.PreserveReferences

	result, err := tbuild.Build(resolverPath, tbuild.Options{
		Renderer:           renderer,
		Preset:             preset,
		Modifiers:          modifiers,
		Category:           category,
		CustomizableOnly:   customizableOnly,
		PreserveReferences: preserveReferences,
	})
	if err != nil {
		return newExitError(1, "tokforge: build failed: %v", err)
	}

	if !result.Success {
		for name, rerr := range result.Errors {
			fmt.Printf("error rendering %s: %v\n", name, rerr)
		}
		return newExitError(1, "tokforge: build failed")
	}

	writeErrs := tbuild.Write(outputDir, result)
	for name, werr := range writeErrs {
		fmt.Printf("error writing %s: %v\n", name, werr)
	}
	if len(writeErrs) > 0 {
		return newExitError(1, "tokforge: %d output file(s) failed to write", len(writeErrs))
	}

	for name := range result.Outputs {
		fmt.Printf("Generated %s/%s\n", outputDir, name)
	}
	return nil
}

// firstNonEmpty returns the first non-empty string among candidates.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
