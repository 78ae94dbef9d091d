// tokforge/cmd/tokforge/integration_test.go
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the tokforge binary once before running the integration
// suite, grounded on the teacher's own build-then-exec integration harness.
func TestMain(m *testing.M) {
	cmd := exec.Command("go", "build", "-o", "../../.build/tokforge-test", ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build tokforge binary: " + err.Error() + "\n" + string(out))
	}

	code := m.Run()

	_ = os.RemoveAll("../../.build")
	os.Exit(code)
}

func tokforgeBinary() string {
	return "../../.build/tokforge-test"
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	cmd := exec.Command(tokforgeBinary(), "init", tmpDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, output)
	}

	for _, file := range []string{
		filepath.Join(tmpDir, "resolver.json"),
		filepath.Join(tmpDir, "sets", "brand.json"),
		filepath.Join(tmpDir, "sets", "semantic.json"),
		filepath.Join(tmpDir, "sets", "spacing.json"),
		filepath.Join(tmpDir, "sets", "theme-dark.json"),
	} {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			t.Errorf("expected file not created: %s", file)
		}
	}

	if !strings.Contains(string(output), "Initializing new resolver document") {
		t.Errorf("expected init banner in output, got: %s", output)
	}
}

func TestIntegration_Validate_InitScaffold(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	initCmd := exec.Command(tokforgeBinary(), "init", tmpDir)
	if out, err := initCmd.CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	resolverPath := filepath.Join(tmpDir, "resolver.json")
	cmd := exec.Command(tokforgeBinary(), "validate", resolverPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("validate failed on init's own scaffold: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(string(output), "Validation passed!") {
		t.Errorf("expected validation success message, got: %s", output)
	}
}

func TestIntegration_Validate_BrokenReference(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "sets/brand.json", `{
		"color": {"primary": {"$value": "#3b82f6", "$type": "color"}}
	}`)
	writeFixture(t, tmpDir, "sets/semantic.json", `{
		"color": {"missing": {"$value": "{color.nonexistent}", "$type": "color"}}
	}`)
	writeFixture(t, tmpDir, "resolver.json", `{
		"version": "2025.10",
		"sets": {
			"brand": {"sources": [{"$ref": "./sets/brand.json"}]},
			"semantic": {"sources": [{"$ref": "./sets/semantic.json"}]}
		},
		"resolutionOrder": [
			{"$ref": "#/sets/brand"},
			{"$ref": "#/sets/semantic"}
		]
	}`)

	cmd := exec.Command(tokforgeBinary(), "validate", filepath.Join(tmpDir, "resolver.json"))
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected validate to fail on a broken reference, got: %s", output)
	}
}

func TestIntegration_Build_CSS(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	initCmd := exec.Command(tokforgeBinary(), "init", tmpDir)
	if out, err := initCmd.CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	outputDir := t.TempDir()
	cmd := exec.Command(tokforgeBinary(), "build", filepath.Join(tmpDir, "resolver.json"), "--output", outputDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build failed: %v\nOutput: %s", err, output)
	}

	content, err := os.ReadFile(filepath.Join(outputDir, "tokens.css"))
	if err != nil {
		t.Fatalf("failed to read tokens.css: %v\nbuild output: %s", err, output)
	}

	css := string(content)
	for _, expected := range []string{
		"@layer reset, tokens, themes, components;",
		"--color-brand-primary:",
		"--spacing-md:",
	} {
		if !strings.Contains(css, expected) {
			t.Errorf("expected css output to contain %q, got:\n%s", expected, css)
		}
	}
}

func TestIntegration_Build_Tailwind(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	initCmd := exec.Command(tokforgeBinary(), "init", tmpDir)
	if out, err := initCmd.CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	outputDir := t.TempDir()
	cmd := exec.Command(tokforgeBinary(), "build", filepath.Join(tmpDir, "resolver.json"), "--format", "tailwind", "--output", outputDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("tailwind build failed: %v\nOutput: %s", err, output)
	}

	content, err := os.ReadFile(filepath.Join(outputDir, "tokens.css"))
	if err != nil {
		t.Fatalf("failed to read tokens.css: %v\nbuild output: %s", err, output)
	}
	css := string(content)
	if !strings.Contains(css, `@import "tailwindcss";`) {
		t.Errorf("expected tailwind import, got:\n%s", css)
	}
}

func TestIntegration_Build_InvalidFormat(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	initCmd := exec.Command(tokforgeBinary(), "init", tmpDir)
	if out, err := initCmd.CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	outputDir := t.TempDir()
	cmd := exec.Command(tokforgeBinary(), "build", filepath.Join(tmpDir, "resolver.json"), "--format", "nope", "--output", outputDir)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected build to fail on an unknown format, got: %s", output)
	}
	if !strings.Contains(string(output), "unknown format") {
		t.Errorf("expected an unknown-format error, got: %s", output)
	}
}

func TestIntegration_Workflow_InitValidateBuild(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	if out, err := exec.Command(tokforgeBinary(), "init", tmpDir).CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	resolverPath := filepath.Join(tmpDir, "resolver.json")
	if out, err := exec.Command(tokforgeBinary(), "validate", resolverPath).CombinedOutput(); err != nil {
		t.Fatalf("validate failed: %v\nOutput: %s", err, out)
	}

	outputDir := filepath.Join(tmpDir, "dist")
	if out, err := exec.Command(tokforgeBinary(), "build", resolverPath, "--output", outputDir).CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\nOutput: %s", err, out)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "tokens.css")); os.IsNotExist(err) {
		t.Error("expected tokens.css in the build output directory")
	}
}

func TestIntegration_Lint_InitScaffold(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	if out, err := exec.Command(tokforgeBinary(), "init", tmpDir).CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	resolverPath := filepath.Join(tmpDir, "resolver.json")
	cmd := exec.Command(tokforgeBinary(), "lint", resolverPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("lint failed on a clean scaffold: %v\nOutput: %s", err, output)
	}
	_ = output
}

func TestIntegration_Search_InitScaffold(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	if out, err := exec.Command(tokforgeBinary(), "init", tmpDir).CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}

	resolverPath := filepath.Join(tmpDir, "resolver.json")
	cmd := exec.Command(tokforgeBinary(), "search", "primary", resolverPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("search failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(string(output), "color.brand.primary") {
		t.Errorf("expected search to find color.brand.primary, got: %s", output)
	}
}

func writeFixture(t *testing.T, dir, relPath, content string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", full, err)
	}
}
