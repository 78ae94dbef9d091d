// tokforge/cmd/tokforge/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time version info, injected via ldflags:
//
//	go build -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=..."
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tokforge",
	Short: "tokforge: resolver-based design token compiler",
	Long: `A W3C Design Tokens 2025.10 compliant build tool that composes a
resolver document's sets and modifier overlays into every requested
permutation and renders them as CSS, JSON, JS, Tailwind, iOS, or Android
output.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		c := commit
		if len(c) > 7 {
			c = c[:7]
		}
		fmt.Printf("tokforge version %s (%s) built %s\n", version, c, buildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().String("config", "", "path to an explicit tokforge config file")
	rootCmd.PersistentFlags().String("project-dir", "", "project directory to search for a config file (default: current directory)")
}

func main() {
	os.Exit(run())
}

// run executes the root command and maps any error it returns to an exit
// code. Subcommands signal their own exit code via *exitError; anything else
// (a cobra usage error, an unwrapped panic-turned-error) is framework-level
// and always exits 1 (spec §6: "non-zero framework errors -> 1").
func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if exitErr, ok := err.(*exitError); ok {
		ee = exitErr
	}
	if ee != nil {
		if ee.message != "" {
			fmt.Fprintln(os.Stderr, ee.message)
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

// exitError lets a subcommand's RunE carry an explicit exit code (0/1/2/3,
// spec §6) through cobra's plain error-returning RunE signature.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

func newExitError(code int, format string, args ...any) *exitError {
	return &exitError{code: code, message: fmt.Sprintf(format, args...)}
}
