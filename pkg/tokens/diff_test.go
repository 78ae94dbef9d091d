package tokens

import "testing"

func TestDiffResolved_ReportsChangedAndMissingTokens(t *testing.T) {
	t.Parallel()
	base := ResolvedTokenMap{
		"color.primary": {Name: "color.primary", Value: "#3b82f6"},
		"color.surface": {Name: "color.surface", Value: "#ffffff"},
	}
	target := ResolvedTokenMap{
		"color.primary": {Name: "color.primary", Value: "#60a5fa"},
		"color.surface": {Name: "color.surface", Value: "#ffffff"},
		"color.accent":  {Name: "color.accent", Value: "#f59e0b"},
	}

	diff := DiffResolved(target, base)

	if diff["color.primary"] != "#60a5fa" {
		t.Errorf("color.primary = %v, want #60a5fa (changed)", diff["color.primary"])
	}
	if _, ok := diff["color.surface"]; ok {
		t.Error("color.surface is unchanged, should not appear in the diff")
	}
	if diff["color.accent"] != "#f59e0b" {
		t.Errorf("color.accent = %v, want #f59e0b (new in target)", diff["color.accent"])
	}
}

func TestDiffResolved_EmptyWhenNoOverrides(t *testing.T) {
	t.Parallel()
	base := ResolvedTokenMap{
		"spacing.sm": {Name: "spacing.sm", Value: "4px"},
	}
	target := ResolvedTokenMap{
		"spacing.sm": {Name: "spacing.sm", Value: "4px"},
	}
	diff := DiffResolved(target, base)
	if len(diff) != 0 {
		t.Errorf("DiffResolved() = %v, want empty", diff)
	}
}
