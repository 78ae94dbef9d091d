package tokens

import "testing"

func testModifierDoc() *ResolverDocument {
	return &ResolverDocument{
		Version: ResolverVersion,
		Modifiers: map[string]Modifier{
			"theme": {
				Default:  "light",
				Contexts: map[string][]SourceRef{"light": {}, "dark": {}},
			},
			"density": {
				Contexts: map[string][]SourceRef{"cozy": {}, "compact": {}},
			},
		},
		ModifierOrder: []string{"theme", "density"},
		ContextOrder: map[string][]string{
			"theme":   {"light", "dark"},
			"density": {"cozy", "compact"},
		},
	}
}

func TestPrepareModifierInputs_NoInputsFillsDefault(t *testing.T) {
	t.Parallel()
	doc := testModifierDoc()
	prepared, err := PrepareModifierInputs(doc, nil)
	if err != nil {
		t.Fatalf("PrepareModifierInputs failed: %v", err)
	}
	if prepared.Resolved["theme"] != "light" {
		t.Errorf("theme = %q, want light (the declared default)", prepared.Resolved["theme"])
	}
	if _, ok := prepared.Resolved["density"]; ok {
		t.Error("density has no default and no selection, expected it left unset")
	}
}

func TestPrepareModifierInputs_ExplicitSelectionWins(t *testing.T) {
	t.Parallel()
	doc := testModifierDoc()
	prepared, err := PrepareModifierInputs(doc, ModifierInputs{"theme": "dark"})
	if err != nil {
		t.Fatalf("PrepareModifierInputs failed: %v", err)
	}
	if prepared.Resolved["theme"] != "dark" {
		t.Errorf("theme = %q, want dark", prepared.Resolved["theme"])
	}
}

func TestPrepareModifierInputs_CaseInsensitiveModifierAndContextNames(t *testing.T) {
	t.Parallel()
	doc := testModifierDoc()
	prepared, err := PrepareModifierInputs(doc, ModifierInputs{"THEME": "DARK"})
	if err != nil {
		t.Fatalf("PrepareModifierInputs failed: %v", err)
	}
	if prepared.Resolved["theme"] != "dark" {
		t.Errorf("theme = %q, want dark re-cased to the declared context name", prepared.Resolved["theme"])
	}
}

func TestPrepareModifierInputs_UnknownModifierIsAnError(t *testing.T) {
	t.Parallel()
	doc := testModifierDoc()
	_, err := PrepareModifierInputs(doc, ModifierInputs{"nonexistent": "whatever"})
	if err == nil {
		t.Fatal("expected an error for an unknown modifier")
	}
	if CodeOf(err) != CodeModifier {
		t.Errorf("Code = %v, want %v", CodeOf(err), CodeModifier)
	}
}

func TestPrepareModifierInputs_UnknownContextIsAnError(t *testing.T) {
	t.Parallel()
	doc := testModifierDoc()
	_, err := PrepareModifierInputs(doc, ModifierInputs{"theme": "neon"})
	if err == nil {
		t.Fatal("expected an error for an unknown context")
	}
	if CodeOf(err) != CodeModifier {
		t.Errorf("Code = %v, want %v", CodeOf(err), CodeModifier)
	}
}

func TestPrepareModifierInputs_InputsWithNoModifiersDeclaredIsAnError(t *testing.T) {
	t.Parallel()
	doc := &ResolverDocument{Version: ResolverVersion}
	_, err := PrepareModifierInputs(doc, ModifierInputs{"theme": "dark"})
	if err == nil {
		t.Fatal("expected an error when the document declares no modifiers at all")
	}
}

func TestPrepareModifierInputs_EmptyDocumentAndEmptyInputsIsFine(t *testing.T) {
	t.Parallel()
	doc := &ResolverDocument{Version: ResolverVersion}
	prepared, err := PrepareModifierInputs(doc, nil)
	if err != nil {
		t.Fatalf("PrepareModifierInputs failed: %v", err)
	}
	if len(prepared.Resolved) != 0 {
		t.Errorf("Resolved = %v, want empty", prepared.Resolved)
	}
}
