package context

import "testing"

func TestContentBudgetAppliesRatio(t *testing.T) {
	got := ContentBudget(100000)
	want := 75000
	if got != want {
		t.Fatalf("ContentBudget(100000) = %d, want %d", got, want)
	}
}

func TestContentBudgetZeroOrNegativeWindow(t *testing.T) {
	if got := ContentBudget(0); got != 0 {
		t.Fatalf("ContentBudget(0) = %d, want 0", got)
	}
	if got := ContentBudget(-5); got != 0 {
		t.Fatalf("ContentBudget(-5) = %d, want 0", got)
	}
}

func TestAllocateSplitsProportionally(t *testing.T) {
	out := Allocate(100000, []Split{
		{Name: "style_examples", Weight: 0.25},
		{Name: "code_under_test", Weight: 0.75},
	})
	if out["style_examples"] != 25000 {
		t.Fatalf("style_examples = %d, want 25000", out["style_examples"])
	}
	if out["code_under_test"] != 75000 {
		t.Fatalf("code_under_test = %d, want 75000", out["code_under_test"])
	}
}

func TestAllocateSumsToTotalDespiteRounding(t *testing.T) {
	out := Allocate(100001, []Split{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 1},
		{Name: "c", Weight: 1},
	})
	sum := out["a"] + out["b"] + out["c"]
	if sum != 100001 {
		t.Fatalf("sum of allocations = %d, want 100001", sum)
	}
}

func TestAllocateEmptyInputs(t *testing.T) {
	if out := Allocate(0, []Split{{Name: "a", Weight: 1}}); len(out) != 0 {
		t.Fatalf("Allocate(0, ...) = %v, want empty", out)
	}
	if out := Allocate(100, nil); len(out) != 0 {
		t.Fatalf("Allocate(100, nil) = %v, want empty", out)
	}
}
