// Package report renders calorie summaries for a date range as
// markdown, optionally exported as a standalone HTML page.
package report

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"yada/internal/dailylog"
	"yada/internal/errors"
)

// renderer converts report markdown; the table extension covers the
// per-day summary tables.
var renderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// Input contains parameters for building a report.
type Input struct {
	Start dailylog.Date
	End   dailylog.Date

	// Target is an optional daily calorie target. When positive, each
	// day is compared against it.
	Target float64

	// TargetName names the strategy the target came from.
	TargetName string
}

// Build produces a markdown calorie report over [Start, End]. Days with
// no entries are omitted, matching the summary semantics.
func Build(log *dailylog.Log, input Input) string {
	summary := log.CalorieSummary(input.Start, input.End)

	var b strings.Builder
	fmt.Fprintf(&b, "# Calorie report\n\n")
	fmt.Fprintf(&b, "%s to %s\n\n", input.Start, input.End)

	if len(summary) == 0 {
		b.WriteString("No servings logged in this range.\n")
		return b.String()
	}

	withTarget := input.Target > 0
	if withTarget {
		fmt.Fprintf(&b, "Daily target: %.0f kcal (%s)\n\n", input.Target, input.TargetName)
		b.WriteString("| Date | Calories | Target delta |\n")
		b.WriteString("| --- | ---: | ---: |\n")
	} else {
		b.WriteString("| Date | Calories |\n")
		b.WriteString("| --- | ---: |\n")
	}

	var total float64
	days := 0
	for _, date := range log.Dates() {
		cal, ok := summary[date]
		if !ok {
			continue
		}
		total += cal
		days++
		if withTarget {
			fmt.Fprintf(&b, "| %s | %.1f | %+.1f |\n", date, cal, cal-input.Target)
		} else {
			fmt.Fprintf(&b, "| %s | %.1f |\n", date, cal)
		}
	}

	fmt.Fprintf(&b, "\nTotal: %.1f kcal over %d day(s), average %.1f kcal/day.\n",
		total, days, total/float64(days))
	return b.String()
}

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Calorie report</title>
</head>
<body>
%s</body>
</html>
`

// WriteHTML converts markdown to HTML via goldmark and writes it as a
// standalone page. The file is written to a temp path and renamed into
// place so a failure preserves any existing file.
func WriteHTML(markdown, path string) error {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return errors.NewInternal(err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.NewPersistenceFailure(path, err)
		}
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(err)
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	page := fmt.Sprintf(htmlShell, buf.String())
	if err := os.WriteFile(tempPath, []byte(page), 0600); err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewPersistenceFailure(path, err)
	}
	return nil
}
