package catalog

import (
	"testing"

	"yada/internal/errors"
	"yada/internal/food"
)

func TestAddBasicFood(t *testing.T) {
	c := New()

	f, err := c.AddBasicFood("Apple", []string{"fruit"}, 95)
	if err != nil {
		t.Fatalf("AddBasicFood failed: %v", err)
	}
	if f.Identifier() != "Apple" {
		t.Errorf("Identifier() = %q, want %q", f.Identifier(), "Apple")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestAddBasicFood_Duplicate(t *testing.T) {
	c := New()
	if _, err := c.AddBasicFood("Apple", []string{"fruit"}, 95); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := c.AddBasicFood("Apple", []string{"other"}, 50)
	if !errors.Is(err, errors.ErrDuplicateIdentifier) {
		t.Errorf("second add error = %v, want DUPLICATE_IDENTIFIER", err)
	}
	if c.Len() != 1 {
		t.Errorf("failed add must not change state, Len() = %d", c.Len())
	}
}

func TestAddCompositeFood_DuplicateAcrossGroups(t *testing.T) {
	c := New()
	apple, _ := c.AddBasicFood("Apple", nil, 95)

	// Composite colliding with a basic identifier.
	_, err := c.AddCompositeFood("Apple", nil, []food.Serving{{Food: apple, Servings: 1}})
	if !errors.Is(err, errors.ErrDuplicateIdentifier) {
		t.Errorf("composite over basic error = %v, want DUPLICATE_IDENTIFIER", err)
	}

	// Basic colliding with a composite identifier.
	if _, err := c.AddCompositeFood("Snack", nil, []food.Serving{{Food: apple, Servings: 1}}); err != nil {
		t.Fatalf("AddCompositeFood failed: %v", err)
	}
	_, err = c.AddBasicFood("Snack", nil, 10)
	if !errors.Is(err, errors.ErrDuplicateIdentifier) {
		t.Errorf("basic over composite error = %v, want DUPLICATE_IDENTIFIER", err)
	}
}

func TestAddCompositeFood_EmptyComposition(t *testing.T) {
	c := New()

	_, err := c.AddCompositeFood("Empty Snack", []string{"snack"}, nil)
	if !errors.Is(err, errors.ErrEmptyComposition) {
		t.Errorf("error = %v, want EMPTY_COMPOSITION", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed add must not change state, Len() = %d", c.Len())
	}
}

func TestAddBasicFood_EmptyIdentifier(t *testing.T) {
	c := New()
	_, err := c.AddBasicFood("", nil, 10)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestSearch(t *testing.T) {
	c := New()
	milk, _ := c.AddBasicFood("Milk", []string{"milk", "dairy"}, 103)
	if _, err := c.AddBasicFood("Bread", []string{"bread", "grain"}, 79); err != nil {
		t.Fatal(err)
	}

	t.Run("match any returns both", func(t *testing.T) {
		got := c.Search([]string{"milk", "grain"}, false)
		if len(got) != 2 {
			t.Fatalf("Search any = %d results, want 2", len(got))
		}
	})

	t.Run("match all returns neither", func(t *testing.T) {
		got := c.Search([]string{"milk", "grain"}, true)
		if len(got) != 0 {
			t.Fatalf("Search all = %d results, want 0", len(got))
		}
	})

	t.Run("empty query returns all", func(t *testing.T) {
		got := c.Search(nil, true)
		if len(got) != 2 {
			t.Fatalf("Search empty = %d results, want 2", len(got))
		}
	})

	t.Run("no match is empty not error", func(t *testing.T) {
		got := c.Search([]string{"fish"}, false)
		if got == nil || len(got) != 0 {
			t.Fatalf("Search miss = %v, want empty slice", got)
		}
	})

	t.Run("case-insensitive", func(t *testing.T) {
		got := c.Search([]string{"DAIRY"}, false)
		if len(got) != 1 || got[0] != food.Food(milk) {
			t.Fatalf("Search DAIRY = %v, want [Milk]", got)
		}
	})
}

func TestSearch_Ordering(t *testing.T) {
	c := New()
	apple, _ := c.AddBasicFood("Apple", []string{"snack"}, 95)
	if _, err := c.AddCompositeFood("Trail Mix", []string{"snack"}, []food.Serving{{Food: apple, Servings: 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBasicFood("Banana", []string{"snack"}, 105); err != nil {
		t.Fatal(err)
	}

	// Basic group first in insertion order, then composites.
	got := c.Search([]string{"snack"}, true)
	wantOrder := []string{"Apple", "Banana", "Trail Mix"}
	if len(got) != len(wantOrder) {
		t.Fatalf("Search = %d results, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].Identifier() != id {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Identifier(), id)
		}
	}
}

func TestLookup(t *testing.T) {
	c := New()
	apple, _ := c.AddBasicFood("Apple", nil, 95)
	if _, err := c.AddCompositeFood("Snack", nil, []food.Serving{{Food: apple, Servings: 2}}); err != nil {
		t.Fatal(err)
	}

	if f, ok := c.Lookup("Apple"); !ok || f.Identifier() != "Apple" {
		t.Errorf("Lookup(Apple) = %v, %v", f, ok)
	}
	if f, ok := c.Lookup("Snack"); !ok || f.Identifier() != "Snack" {
		t.Errorf("Lookup(Snack) = %v, %v", f, ok)
	}
	if _, ok := c.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) = true, want false")
	}
}
