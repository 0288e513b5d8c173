package catalog_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/vigil/internal/catalog"
)

func TestWithSynthetic(t *testing.T) {
	tests := []struct {
		name string
		cats []catalog.Category
		want []string
	}{
		{
			"empty catalogue",
			nil,
			[]string{catalog.NeedsMoreInfo, catalog.NoneOfTheAbove},
		},
		{
			"tenant categories first",
			[]catalog.Category{{Name: "Theft"}, {Name: "Assault"}},
			[]string{"Theft", "Assault", catalog.NeedsMoreInfo, catalog.NoneOfTheAbove},
		},
		{
			"configured synthetic not duplicated",
			[]catalog.Category{{Name: "needs more info"}},
			[]string{"needs more info", catalog.NoneOfTheAbove},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.WithSynthetic(tt.cats)
			if len(got) != len(tt.want) {
				t.Fatalf("len: got %d, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("category %d: got %s, want %s", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestWithSyntheticDoesNotMutateInput(t *testing.T) {
	cats := make([]catalog.Category, 1, 4)
	cats[0] = catalog.Category{Name: "Theft"}

	_ = catalog.WithSynthetic(cats)

	if len(cats) != 1 {
		t.Errorf("input len: got %d, want 1", len(cats))
	}
}

func TestRender(t *testing.T) {
	got := catalog.Render([]catalog.Category{
		{Name: "Theft", Description: "Property taken without consent"},
		{Name: "Vandalism"},
	})

	want := "Theft: Property taken without consent\tVandalism"
	if got != want {
		t.Errorf("render: got %q, want %q", got, want)
	}

	if strings.Contains(got, "\n") {
		t.Error("catalogue must not contain newlines")
	}
}

func TestIs(t *testing.T) {
	if !catalog.Is("  needs MORE info ", catalog.NeedsMoreInfo) {
		t.Error("expected case-insensitive match")
	}
	if catalog.Is("Theft", catalog.NoneOfTheAbove) {
		t.Error("unexpected match")
	}
}
