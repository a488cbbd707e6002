package portfolio

import "testing"

func TestParseListTrimsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	got := ParseList("React, TypeScript,  Tailwind CSS")
	expected := []string{"React", "TypeScript", "Tailwind CSS"}

	if len(got) != len(expected) {
		t.Fatalf("expected %d items, got %d (%q)", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("expected %q at index %d, got %q", expected[i], i, got[i])
		}
	}
}

func TestParseListEmptyInputYieldsSingleEmptyItem(t *testing.T) {
	t.Parallel()

	got := ParseList("")
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("expected [\"\"], got %q", got)
	}
}

func TestJoinListRoundTripsDisplayValue(t *testing.T) {
	t.Parallel()

	if got := JoinList([]string{"Go", "SQL"}); got != "Go, SQL" {
		t.Fatalf("expected %q, got %q", "Go, SQL", got)
	}
}

func TestProjectGalleryFallsBackToCover(t *testing.T) {
	t.Parallel()

	project := Project{Image: "cover.png"}
	gallery := project.Gallery()
	if len(gallery) != 1 || gallery[0] != "cover.png" {
		t.Fatalf("expected cover image fallback, got %q", gallery)
	}

	project.Images = []string{"a.png", "b.png"}
	if got := project.Gallery(); len(got) != 2 {
		t.Fatalf("expected explicit images to win, got %q", got)
	}
}
