// tokforge/cmd/tokforge/init.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a new resolver document and starter token sets",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	fmt.Printf("Initializing new resolver document in %s...\n", dir)

	setsDir := filepath.Join(dir, "sets")
	if err := os.MkdirAll(setsDir, 0755); err != nil {
		return newExitError(1, "tokforge: failed to create directory %s: %v", setsDir, err)
	}

	sets := map[string]any{
		"sets/brand.json": map[string]any{
			"color": map[string]any{
				"brand": map[string]any{
					"$type":        "color",
					"$description": "Core brand identity colors",
					"primary":      map[string]any{"$value": "#3b82f6"},
					"secondary":    map[string]any{"$value": "#8b5cf6"},
				},
			},
		},
		"sets/semantic.json": map[string]any{
			"color": map[string]any{
				"status": map[string]any{
					"$type":   "color",
					"success": map[string]any{"$value": "{color.brand.primary}"},
					"error":   map[string]any{"$value": "#ef4444"},
					"warning": map[string]any{"$value": "#f59e0b"},
				},
			},
		},
		"sets/spacing.json": map[string]any{
			"spacing": map[string]any{
				"$type": "dimension",
				"sm":    map[string]any{"$value": "0.5rem"},
				"md":    map[string]any{"$value": "1rem"},
				"lg":    map[string]any{"$value": "1.5rem"},
			},
		},
		"sets/theme-dark.json": map[string]any{
			"color": map[string]any{
				"status": map[string]any{
					"success": map[string]any{"$value": "#34d399"},
				},
			},
		},
	}

	for path, content := range sets {
		if err := writeJSONFile(filepath.Join(dir, path), content); err != nil {
			return newExitError(1, "tokforge: %v", err)
		}
		fmt.Printf("Created %s\n", filepath.Join(dir, path))
	}

	resolver := map[string]any{
		"version": "2025.10",
		"sets": map[string]any{
			"brand":    map[string]any{"sources": []any{map[string]any{"$ref": "./sets/brand.json"}}},
			"semantic": map[string]any{"sources": []any{map[string]any{"$ref": "./sets/semantic.json"}}},
			"spacing":  map[string]any{"sources": []any{map[string]any{"$ref": "./sets/spacing.json"}}},
		},
		"modifiers": map[string]any{
			"theme": map[string]any{
				"default": "light",
				"contexts": map[string]any{
					"light": []any{},
					"dark":  []any{map[string]any{"$ref": "./sets/theme-dark.json"}},
				},
			},
		},
		"resolutionOrder": []any{
			map[string]any{"$ref": "#/sets/brand"},
			map[string]any{"$ref": "#/sets/semantic"},
			map[string]any{"$ref": "#/sets/spacing"},
			map[string]any{"$ref": "#/modifiers/theme"},
		},
	}

	resolverPath := filepath.Join(dir, "resolver.json")
	if err := writeJSONFile(resolverPath, resolver); err != nil {
		return newExitError(1, "tokforge: %v", err)
	}
	fmt.Printf("Created %s\n", resolverPath)

	fmt.Println("Done! You can now run 'tokforge validate' or 'tokforge build' against resolver.json.")
	return nil
}

func writeJSONFile(path string, content any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
