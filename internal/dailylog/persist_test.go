package dailylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yada/internal/food"
)

func testResolver(foods ...food.Food) Resolver {
	byID := make(map[string]food.Food, len(foods))
	for _, f := range foods {
		byID[f.Identifier()] = f
	}
	return func(id string) (food.Food, bool) {
		f, ok := byID[id]
		return f, ok
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_log.txt")

	l := New()
	l.Add("2024-01-01", food.Serving{Food: apple, Servings: 2})
	l.Add("2024-01-01", food.Serving{Food: pb, Servings: 0.5})
	l.Add("2024-01-03", food.Serving{Food: milk, Servings: 1})

	if err := l.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := New()
	if err := loaded.Load(path, testResolver(apple, pb, milk)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	day1 := loaded.ServingsForDate("2024-01-01")
	if len(day1) != 2 {
		t.Fatalf("day 1 = %d entries, want 2", len(day1))
	}
	if !day1[0].Equal(food.Serving{Food: apple, Servings: 2}) {
		t.Errorf("day 1 entry 0 = %v x%v", day1[0].Food.Identifier(), day1[0].Servings)
	}
	if got := loaded.TotalCalories("2024-01-03"); got != 103 {
		t.Errorf("day 3 total = %v, want 103", got)
	}
}

func TestSave_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_log.txt")

	l := New()
	l.Add("2024-01-01", food.Serving{Food: apple, Servings: 2})
	if err := l.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2024-01-01|Apple|2\n" {
		t.Errorf("log file = %q, want %q", string(data), "2024-01-01|Apple|2\n")
	}
}

func TestLoad_UnknownFoodSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_log.txt")
	content := strings.Join([]string{
		"2024-01-01|Apple|1",
		"2024-01-01|Ghost|3",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.Load(path, testResolver(apple)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := l.ServingsForDate("2024-01-01"); len(got) != 1 {
		t.Errorf("day = %d entries, want 1 (unknown food skipped)", len(got))
	}
}

func TestLoad_MalformedLinesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_log.txt")
	content := strings.Join([]string{
		"not-a-date|Apple|1",
		"2024-01-01|Apple|not-a-number",
		"2024-01-01|Apple|-1",
		"2024-01-01|Apple|1",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.Load(path, testResolver(apple)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := l.ServingsForDate("2024-01-01"); len(got) != 1 {
		t.Errorf("day = %d entries, want 1", len(got))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := New()
	if err := l.Load(filepath.Join(t.TempDir(), "daily_log.txt"), testResolver()); err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if len(l.Dates()) != 0 {
		t.Error("missing file must load an empty log")
	}
}

func TestLoad_DoesNotFeedUndoHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_log.txt")
	if err := os.WriteFile(path, []byte("2024-01-01|Apple|1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.Load(path, testResolver(apple)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Restored entries are not session mutations.
	if l.CanUndo() {
		t.Error("load must not push commands onto the history")
	}
}
