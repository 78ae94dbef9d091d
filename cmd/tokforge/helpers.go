// tokforge/cmd/tokforge/helpers.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokforge/tokforge/pkg/build"
	"github.com/tokforge/tokforge/pkg/render"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// loadConfig resolves a command's --config/--project-dir flags (inherited
// from rootCmd's persistent flags) into a build.Config, mapping a malformed
// config file to exit code 3 (spec §6 "Malformed config at any command ->
// 3") regardless of which subcommand triggered the load.
func loadConfig(cmd *cobra.Command) (build.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	projectDir, _ := cmd.Flags().GetString("project-dir")

	cfg, err := build.LoadConfig(projectDir, configPath)
	if err != nil {
		return build.Config{}, newExitError(3, "tokforge: %v", err)
	}
	return cfg, nil
}

// rendererFor resolves a format name to its built-in Renderer (spec §5).
func rendererFor(name string) (render.Renderer, error) {
	switch strings.ToLower(name) {
	case "css":
		return render.NewCSSRenderer(), nil
	case "tailwind":
		return render.NewTailwindRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "js":
		return render.NewJSRenderer(), nil
	case "ios":
		return render.NewIOSRenderer(), nil
	case "android":
		return render.NewAndroidRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of: css, tailwind, json, js, ios, android)", name)
	}
}

// presetFor resolves a preset name, defaulting to bundle.
func presetFor(name string) (render.Preset, error) {
	switch strings.ToLower(name) {
	case "", "bundle":
		return render.PresetBundle, nil
	case "standalone":
		return render.PresetStandalone, nil
	case "modifier":
		return render.PresetModifier, nil
	default:
		return "", fmt.Errorf("unknown preset %q (want one of: bundle, standalone, modifier)", name)
	}
}

// parseModifierFlags turns repeated --modifier name=context flags into a
// tokens.ModifierInputs, reporting a clear error on a malformed entry.
func parseModifierFlags(raw []string) (tokens.ModifierInputs, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	inputs := make(tokens.ModifierInputs, len(raw))
	for _, entry := range raw {
		name, context, ok := strings.Cut(entry, "=")
		if !ok || name == "" || context == "" {
			return nil, fmt.Errorf("--modifier %q must be of the form name=context", entry)
		}
		inputs[name] = context
	}
	return inputs, nil
}
