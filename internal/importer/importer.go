// Package importer bulk-loads basic foods into the catalog from an
// external SQLite nutrition database, e.g. one distilled from a public
// food-facts dump. Expected schema:
//
//	CREATE TABLE foods (
//	  name             TEXT NOT NULL,
//	  keywords         TEXT,          -- comma-separated
//	  kcal_per_serving REAL NOT NULL
//	);
package importer

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"yada/internal/catalog"
	"yada/internal/errors"
)

// Mode controls collision behavior during import.
type Mode string

const (
	ModeSkip Mode = "skip" // default: existing identifiers are counted as skipped
	ModeFail Mode = "fail" // atomic: any collision aborts before anything is added
)

// Plausibility bounds for a per-serving calorie value. Rows outside the
// range are reported per-row, not fatal.
const (
	minCalories = 0
	maxCalories = 10000
)

// Input contains parameters for the Import operation.
type Input struct {
	Path string // required
	Mode Mode   // default: skip
}

// Output contains the result of the Import operation.
type Output struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// RowError reports a row that could not be imported.
type RowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type row struct {
	name     string
	keywords []string
	calories float64
}

// Import reads the foods table and adds each valid row to the catalog
// as a basic food. The caller is responsible for persisting the catalog
// afterwards.
func Import(cat *catalog.Catalog, input Input) (*Output, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ModeSkip
	}
	if input.Mode != ModeSkip && input.Mode != ModeFail {
		return nil, errors.NewInvalidRequest("mode must be one of: skip, fail")
	}
	if _, err := os.Stat(input.Path); os.IsNotExist(err) {
		return nil, errors.NewNotFound(input.Path)
	}

	db, err := sql.Open("sqlite", input.Path)
	if err != nil {
		return nil, errors.NewPersistenceFailure(input.Path, err)
	}
	defer db.Close()

	rows, rowErrors, err := readRows(db, input.Path)
	if err != nil {
		return nil, err
	}

	// mode:fail is atomic: check every collision before adding anything.
	if input.Mode == ModeFail {
		seen := make(map[string]bool)
		for _, r := range rows {
			if _, exists := cat.Lookup(r.name); exists || seen[r.name] {
				return nil, errors.NewDuplicateIdentifier(r.name)
			}
			seen[r.name] = true
		}
	}

	out := &Output{Errors: rowErrors}
	for _, r := range rows {
		if _, err := cat.AddBasicFood(r.name, r.keywords, r.calories); err != nil {
			if errors.Is(err, errors.ErrDuplicateIdentifier) {
				out.Skipped++
				continue
			}
			return nil, err
		}
		out.Imported++
	}
	return out, nil
}

func readRows(db *sql.DB, path string) ([]row, []RowError, error) {
	result, err := db.Query(`SELECT name, keywords, kcal_per_serving FROM foods`)
	if err != nil {
		return nil, nil, errors.NewPersistenceFailure(path, err)
	}
	defer result.Close()

	var rows []row
	var rowErrors []RowError
	n := 0
	for result.Next() {
		n++
		var name string
		var keywords sql.NullString
		var calories float64
		if err := result.Scan(&name, &keywords, &calories); err != nil {
			rowErrors = append(rowErrors, RowError{
				Row:     n,
				Code:    "SCAN_ERROR",
				Message: err.Error(),
			})
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			rowErrors = append(rowErrors, RowError{
				Row:     n,
				Code:    "INVALID_ROW",
				Message: "empty food name",
			})
			continue
		}
		if calories < minCalories || calories > maxCalories {
			rowErrors = append(rowErrors, RowError{
				Row:     n,
				Name:    name,
				Code:    "INVALID_ROW",
				Message: fmt.Sprintf("kcal_per_serving %v outside [%d, %d]", calories, minCalories, maxCalories),
			})
			continue
		}

		rows = append(rows, row{
			name:     name,
			keywords: splitKeywords(keywords.String),
			calories: calories,
		})
	}
	if err := result.Err(); err != nil {
		return nil, nil, errors.NewPersistenceFailure(path, err)
	}
	return rows, rowErrors, nil
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		kw := strings.TrimSpace(p)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
