// tokforge/cmd/tokforge/search.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tokforge/tokforge/pkg/tokens"
)

var searchCmd = &cobra.Command{
	Use:   "search [query] [resolver.json]",
	Short: "Search the base permutation's resolved tokens",
	Long: `Search composes a resolver document with every modifier at its default
context (a modifier without a default contributes no overlay) and filters
its resolved tokens by name, type, or category.
This is a convenience subcommand over the resolved token set, not part of the
core library surface.

Examples:
  tokforge search primary              # Find tokens containing "primary"
  tokforge search --type=color         # List all color tokens
  tokforge search --category=spacing   # List all spacing tokens
  tokforge search btn --type=color     # Color tokens containing "btn"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSearch,
}

var searchFlags struct {
	tokenType string
	category  string
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.tokenType, "type", "t", "", "filter by token $type (color, dimension, number, etc.)")
	searchCmd.Flags().StringVarP(&searchFlags.category, "category", "c", "", "filter by category (first path segment)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	query := ""
	resolverPath := cfg.Resolver
	switch len(args) {
	case 1:
		query = strings.ToLower(args[0])
	case 2:
		query = strings.ToLower(args[0])
		resolverPath = args[1]
	}

	doc, err := tokens.LoadResolverDocument(resolverPath)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}

	composer := tokens.NewComposer(doc, tokens.ParseOptions{Mode: tokens.ModeWarn, Sink: tokens.StderrSink{}})
	resolved, err := tokens.ResolveTokens(doc, composer, nil)
	if err != nil {
		return newExitError(1, "tokforge: %v", err)
	}

	var results []*tokens.ResolvedToken
	for _, tok := range resolved {
		if !matchesSearch(tok, query, searchFlags.tokenType, searchFlags.category) {
			continue
		}
		results = append(results, tok)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	if len(results) == 0 {
		fmt.Println("No tokens found matching the search criteria.")
		return nil
	}

	fmt.Printf("Found %d token(s):\n\n", len(results))
	for _, r := range results {
		valueStr := formatValue(r.Value)
		name := highlightIfDeprecated(r.Name, r.Deprecated)
		if r.Type != "" {
			fmt.Printf("%s [%s]: %s\n", name, r.Type, valueStr)
		} else {
			fmt.Printf("%s: %s\n", name, valueStr)
		}
		if r.Description != "" {
			fmt.Printf("  %s\n", pterm.Gray(r.Description))
		}
		fmt.Println()
	}
	return nil
}

// highlightIfDeprecated appends a colored deprecation marker to name when the
// token carries a non-nil Deprecated value, optionally including the reason.
func highlightIfDeprecated(name string, deprecated any) string {
	if deprecated == nil {
		return name
	}
	if reason, ok := deprecated.(string); ok && reason != "" {
		return name + " (" + pterm.Red("DEPRECATED") + ": " + pterm.LightRed(reason) + ")"
	}
	return name + " " + pterm.Red("(DEPRECATED)")
}

// matchesSearch checks if a resolved token matches the search criteria.
func matchesSearch(tok *tokens.ResolvedToken, query, filterType, filterCategory string) bool {
	pathLower := strings.ToLower(tok.Name)

	if query != "" {
		matchesPath := strings.Contains(pathLower, query)
		matchesDesc := strings.Contains(strings.ToLower(tok.Description), query)
		if !matchesPath && !matchesDesc {
			return false
		}
	}

	if filterType != "" && !strings.EqualFold(tok.Type, filterType) {
		return false
	}

	if filterCategory != "" && !matchesCategory(getCategory(tok.Name), filterCategory) {
		return false
	}

	return true
}

// getCategory extracts the first segment of a token path.
func getCategory(path string) string {
	if idx := strings.Index(path, "."); idx != -1 {
		return path[:idx]
	}
	return path
}

// matchesCategory checks if a category matches the filter (handles plural/singular).
func matchesCategory(category, filter string) bool {
	category = strings.ToLower(category)
	filter = strings.ToLower(filter)

	if category == filter {
		return true
	}
	if strings.HasSuffix(filter, "s") {
		if category == filter[:len(filter)-1] {
			return true
		}
	} else if category == filter+"s" {
		return true
	}
	return false
}

// formatValue converts a resolved value to a display string.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ", ")
	case float64:
		if v == float64(int(v)) {
			return fmt.Sprintf("%d", int(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
