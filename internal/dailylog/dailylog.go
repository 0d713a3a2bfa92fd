// Package dailylog records per-date food servings with a
// command-pattern undo stack and computes calorie aggregates over date
// ranges. It never talks to the catalog: callers hand it resolved food
// references and it stores them as non-owning shared values.
package dailylog

import (
	"sort"
	"time"

	"yada/internal/errors"
	"yada/internal/food"
)

// DateLayout is the ISO-8601 calendar date form used throughout.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. Zero-padded ISO dates
// compare chronologically under ordinary string comparison.
type Date string

// ParseDate validates s as an ISO-8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", errors.NewInvalidRequest("date must be in YYYY-MM-DD form: " + s)
	}
	// Re-format so "2024-1-1" style inputs never slip through as keys.
	return Date(t.Format(DateLayout)), nil
}

type commandKind int

const (
	addCommand commandKind = iota
	removeCommand
)

// command is one reversible mutation. An add is undone by removing the
// serving it appended; a remove is undone by re-inserting the serving
// at its original index so log order is restored exactly.
type command struct {
	kind    commandKind
	date    Date
	serving food.Serving
	index   int // original position, remove commands only
}

// Log is the daily food log. A date with no entries is absent from the
// mapping, never present with an empty slice. The command history is
// session-transient and never persisted. Not safe for concurrent
// mutation.
type Log struct {
	days    map[Date][]food.Serving
	history []command
}

// New creates an empty log.
func New() *Log {
	return &Log{days: make(map[Date][]food.Serving)}
}

// Add appends a serving to the date's sequence, creating the day if
// absent, and records the mutation on the undo stack. Never fails.
func (l *Log) Add(date Date, s food.Serving) {
	l.days[date] = append(l.days[date], s)
	l.history = append(l.history, command{kind: addCommand, date: date, serving: s})
}

// Remove deletes the first serving equal to s from the date's sequence.
// Returns false, leaving the history untouched, when the date has no
// entries or no equal serving exists. An emptied day is collapsed.
func (l *Log) Remove(date Date, s food.Serving) bool {
	day := l.days[date]
	idx := -1
	for i, entry := range day {
		if entry.Equal(s) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	l.removeAt(date, idx)
	l.history = append(l.history, command{kind: removeCommand, date: date, serving: s, index: idx})
	return true
}

// Undo pops the most recent command and applies its inverse. Returns
// false when there is nothing to undo. Undos are not re-recorded, so
// there is no redo.
func (l *Log) Undo() bool {
	if len(l.history) == 0 {
		return false
	}
	cmd := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]

	switch cmd.kind {
	case addCommand:
		// Drop the last equal serving: the one the add appended.
		day := l.days[cmd.date]
		for i := len(day) - 1; i >= 0; i-- {
			if day[i].Equal(cmd.serving) {
				l.removeAt(cmd.date, i)
				break
			}
		}
	case removeCommand:
		day := l.days[cmd.date]
		idx := cmd.index
		if idx > len(day) {
			idx = len(day)
		}
		day = append(day, food.Serving{})
		copy(day[idx+1:], day[idx:])
		day[idx] = cmd.serving
		l.days[cmd.date] = day
	}
	return true
}

// CanUndo reports whether the history holds any command.
func (l *Log) CanUndo() bool {
	return len(l.history) > 0
}

// ServingsForDate returns a copy of the date's sequence in log order,
// or an empty slice when the date has no entries. Never creates a day.
func (l *Log) ServingsForDate(date Date) []food.Serving {
	day := l.days[date]
	out := make([]food.Serving, len(day))
	copy(out, day)
	return out
}

// TotalCalories sums calories across the date's entries; 0 for an
// absent date.
func (l *Log) TotalCalories(date Date) float64 {
	var total float64
	for _, s := range l.days[date] {
		total += s.Calories()
	}
	return total
}

// CalorieSummary maps each date in [start, end] that has at least one
// entry to its total calories. Empty days are omitted, not zero-filled.
// The caller guarantees start <= end.
func (l *Log) CalorieSummary(start, end Date) map[Date]float64 {
	summary := make(map[Date]float64)
	for date := range l.days {
		if date < start || date > end {
			continue
		}
		summary[date] = l.TotalCalories(date)
	}
	return summary
}

// Dates returns every date with at least one entry, in chronological
// order.
func (l *Log) Dates() []Date {
	dates := make([]Date, 0, len(l.days))
	for date := range l.days {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// removeAt deletes the entry at idx, collapsing the day when it empties.
func (l *Log) removeAt(date Date, idx int) {
	day := l.days[date]
	day = append(day[:idx], day[idx+1:]...)
	if len(day) == 0 {
		delete(l.days, date)
		return
	}
	l.days[date] = day
}
