package domain

import (
	"strings"
	"testing"
)

func TestRenderShort(t *testing.T) {
	expected := strings.Join([]string{
		"Menu",
		"",
		"Starters: Soup, Fries, Bruschetta",
		"",
		"Mains: Pasta, Pizza, Bowl",
		"",
		"Dessert: Brownie, Cheesecake",
		"",
		"Drinks: Coffee, Tea, Soda",
	}, "\n")
	if got := Default().Render(false); got != expected {
		t.Fatalf("unexpected short menu:\n%s", got)
	}
}

func TestRenderDetails(t *testing.T) {
	got := Default().Render(true)
	if !strings.HasPrefix(got, "Menu\n\nStarters:\n- Soup: Tomato basil soup\n- Fries: Classic fries") {
		t.Fatalf("unexpected detailed menu:\n%s", got)
	}
	if !strings.HasSuffix(got, "Drinks:\n- Coffee: Espresso / Americano\n- Tea: Assorted teas\n- Soda: Soft drinks") {
		t.Fatalf("unexpected detailed menu tail:\n%s", got)
	}
}

func TestCompactDropsDescriptions(t *testing.T) {
	compact := Default().Compact()
	for _, category := range compact {
		for _, item := range category.Items {
			if item.Description != "" {
				t.Fatalf("expected no description for %s", item.Name)
			}
		}
	}
	if Default()[0].Items[0].Description == "" {
		t.Fatal("compact must not mutate the source menu")
	}
}
