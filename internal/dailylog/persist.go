package dailylog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"yada/internal/errors"
	"yada/internal/food"
)

// Persistence format: one line per serving, `date|foodIdentifier|servings`.
// Identifiers must not contain '|' (format limitation shared with the
// catalog files).

// Resolver maps a persisted food identifier back to a live food
// reference, typically a catalog lookup.
type Resolver func(identifier string) (food.Food, bool)

// Save rewrites the log file whole, dates in chronological order,
// entries in log order. A failure reports PERSISTENCE_FAILURE and
// leaves in-memory state untouched.
func (l *Log) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, date := range l.Dates() {
		for _, s := range l.days[date] {
			fmt.Fprintf(w, "%s|%s|%s\n", date, s.Food.Identifier(), strconv.FormatFloat(s.Servings, 'g', -1, 64))
		}
	}
	if err := w.Flush(); err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	return nil
}

// Load reconstructs log entries from the file, resolving food
// identifiers through resolve. A missing file means an empty log.
// Malformed lines and identifiers the resolver does not know are
// skipped. Restored entries bypass the command history: loading is not
// an undoable session mutation.
func (l *Log) Load(path string, resolve Resolver) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewPersistenceFailure(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		date, err := ParseDate(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		servings, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || servings < 0 {
			continue
		}
		fd, ok := resolve(strings.TrimSpace(parts[1]))
		if !ok {
			continue
		}
		l.days[date] = append(l.days[date], food.Serving{Food: fd, Servings: servings})
	}
	if err := scanner.Err(); err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	return nil
}
