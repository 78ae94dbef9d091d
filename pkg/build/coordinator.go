// tokforge/pkg/build/coordinator.go
package build

import (
	"os"
	"path/filepath"

	"github.com/tokforge/tokforge/pkg/render"
	"github.com/tokforge/tokforge/pkg/tokens"
)

// Result is a build's outcome: the files the renderer produced, or, when
// the renderer fails, no files and the failure under the single Errors key
// "<renderer>" (spec §1.8 "Build coordinator"). Failures are not recorded
// per file, and a processor-chain failure is returned as Build's error
// instead of being recorded here.
type Result struct {
	Success bool
	Outputs render.FileTree
	Errors  map[string]error
}

// Options pulls together everything one Build call needs beyond the
// resolver document itself: which renderer to use, which preset, the
// processor chain to run each permutation through, and an optional explicit
// modifier selection narrowing the permutations actually built.
type Options struct {
	Renderer render.Renderer
	Preset   render.Preset
	Chain    Chain
	// Only build permutations whose modifier selections are a superset of
	// Modifiers; nil/empty builds every permutation the document declares.
	Modifiers        tokens.ModifierInputs
	Category         string
	CustomizableOnly bool
	FileName         func(perm tokens.Permutation) string
	// PreserveReferences keeps alias tokens as references instead of
	// inlining their resolved value (spec §3/§4.3 "preserveReferences").
	PreserveReferences bool
}

// Build loads resolverPath, composes every requested permutation, runs each
// one through opts.Chain, and hands the processed permutations to
// opts.Renderer (spec §1.8/§1.9 "Renderer dispatch / Build coordinator").
func Build(resolverPath string, opts Options) (Result, error) {
	doc, err := tokens.LoadResolverDocument(resolverPath)
	if err != nil {
		return Result{}, err
	}

	parseOpts := tokens.ParseOptions{Mode: tokens.ModeWarn, Sink: tokens.StderrSink{}}
	composer := tokens.NewComposer(doc, parseOpts).PreserveReferences(opts.PreserveReferences)

	all, err := tokens.ResolveAllPermutations(doc, composer)
	if err != nil {
		return Result{}, err
	}
	selected := filterPermutations(all, opts.Modifiers)
	if len(selected) == 0 {
		return Result{}, tokens.NewError(tokens.CodeModifier, "no permutation matches the requested modifier selection")
	}

	chain := opts.Chain
	if chain.Preprocessors == nil && chain.Filters == nil && chain.Transforms == nil {
		chain = DefaultChain()
	}

	processed := make([]tokens.Permutation, len(selected))
	for i, perm := range selected {
		out, err := chain.Run(perm.Tokens)
		if err != nil {
			return Result{}, err
		}
		processed[i] = tokens.Permutation{ModifierInputs: perm.ModifierInputs, Tokens: out}
	}

	sideChannel, err := loadSideChannel(doc)
	if err != nil {
		return Result{}, err
	}

	rctx := &render.RenderContext{
		Permutations:     processed,
		Components:       sideChannel.components,
		Breakpoints:      sideChannel.breakpoints,
		PropertyTokens:   tokens.ExtractResolvedPropertyTokens(processed[0].Tokens),
		ResponsiveTokens: tokens.ExtractResolvedResponsiveTokens(processed[0].Tokens),
		Keyframes:        sideChannel.keyframes,
		Metadata:         tokens.ExtractResolvedMetadata(processed[0].Tokens),
		Preset:           opts.Preset,
		FileName:         opts.FileName,
		Category:         opts.Category,
		CustomizableOnly: opts.CustomizableOnly,
	}

	outputs, err := opts.Renderer.Format(rctx)
	if err != nil {
		return Result{Success: false, Errors: map[string]error{"<renderer>": err}}, nil
	}
	return Result{Success: true, Outputs: outputs}, nil
}

// Write persists a Result's outputs under dir, creating parent directories
// as needed and continuing past any single file failure so the rest of the
// tree still lands (spec §1.8 "writes to buildPath... continuing past
// per-output failures").
func Write(dir string, result Result) map[string]error {
	errs := make(map[string]error)
	for name, content := range result.Outputs {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			errs[name] = err
			continue
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			errs[name] = err
		}
	}
	return errs
}

// filterPermutations keeps only permutations whose ModifierInputs agree with
// every entry of want; want being empty keeps everything.
func filterPermutations(all []tokens.Permutation, want tokens.ModifierInputs) []tokens.Permutation {
	if len(want) == 0 {
		return all
	}
	out := make([]tokens.Permutation, 0, len(all))
	for _, perm := range all {
		match := true
		for k, v := range want {
			if perm.ModifierInputs[k] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, perm)
		}
	}
	return out
}

type sideChannelData struct {
	components  map[string]tokens.ComponentDefinition
	breakpoints map[string]string
	keyframes   []tokens.KeyframeDefinition
}

// loadSideChannel merges the raw documents of every Set named in
// resolutionOrder (not modifier overlays;
// components/keyframes/breakpoints are whole-project declarations, not
// per-context ones) into one Dictionary so the Dictionary-only extractors
// (ExtractComponents/ExtractKeyframes/ExtractBreakpoints) have something to
// walk, duplicating the Composer's own set-loading for this narrower purpose.
func loadSideChannel(doc *tokens.ResolverDocument) (sideChannelData, error) {
	refs := tokens.NewReferenceResolver(doc.BaseDir)
	combined := tokens.NewDictionary()

	for _, step := range doc.ResolutionOrder {
		name, ok := setNameFromRef(step.Ref)
		if !ok {
			continue
		}
		set, ok := doc.Sets[name]
		if !ok {
			continue
		}
		for _, src := range set.Sources {
			dict, err := refs.ResolveSource(src, "")
			if err != nil {
				return sideChannelData{}, err
			}
			if err := combined.Merge(dict); err != nil {
				return sideChannelData{}, err
			}
		}
	}

	components, err := combined.ExtractComponents()
	if err != nil {
		return sideChannelData{}, err
	}

	return sideChannelData{
		components:  components,
		breakpoints: tokens.ExtractBreakpoints(combined),
		keyframes:   tokens.ExtractKeyframes(combined),
	}, nil
}

// setNameFromRef reports the set name of a "#/sets/NAME" resolutionOrder
// entry, or ok=false for a "#/modifiers/NAME" entry.
func setNameFromRef(ref string) (name string, ok bool) {
	const prefix = "#/sets/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return "", false
	}
	return ref[len(prefix):], true
}
