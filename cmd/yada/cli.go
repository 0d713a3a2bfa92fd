package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"yada/internal/config"
	"yada/internal/dailylog"
	"yada/internal/diet"
	"yada/internal/errors"
	"yada/internal/food"
	"yada/internal/importer"
	"yada/internal/report"
	"yada/internal/tracker"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(t *tracker.Tracker, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "yada",
		Usage:   "Yet Another Diet Assistant",
		Version: Version,
		Commands: []*cli.Command{
			foodCmd(t, cfg),
			logCmd(t, cfg),
			targetCmd(),
			reportCmd(t),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// foodCmd groups the catalog commands.
func foodCmd(t *tracker.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "food",
		Usage: "Manage the food catalog",
		Subcommands: []*cli.Command{
			foodAddCmd(t),
			foodComposeCmd(t, cfg),
			foodSearchCmd(t),
			foodListCmd(t),
			foodImportCmd(t),
		},
	}
}

// foodAddCmd creates the food add command.
func foodAddCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a basic food",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "calories", Aliases: []string{"c"}, Usage: "Calories per serving", Required: true},
			&cli.StringFlag{Name: "keywords", Aliases: []string{"k"}, Usage: "Comma-separated search keywords"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected exactly one food name"))
			}
			calories := c.Float64("calories")
			if calories < 0 {
				return outputError(errors.NewInvalidRequest("calories must not be negative"))
			}

			f, err := t.Catalog.AddBasicFood(c.Args().First(), parseKeywords(c.String("keywords")), calories)
			if err != nil {
				return outputError(err)
			}
			if err := t.SaveCatalog(); err != nil {
				return outputError(err)
			}

			return outputJSON(tracker.NewFoodView(f))
		},
	}
}

// foodComposeCmd creates the food compose command.
func foodComposeCmd(t *tracker.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "compose",
		Usage:     "Create a composite food from existing foods",
		ArgsUsage: "<name> <food:servings>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keywords", Aliases: []string{"k"}, Usage: "Comma-separated search keywords"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("expected a food name"))
			}
			name := c.Args().First()

			components := make([]food.Serving, 0, c.NArg()-1)
			for _, arg := range c.Args().Tail() {
				id, servings, err := parseComponent(arg)
				if err != nil {
					return outputError(err)
				}
				cf, ok := t.Catalog.Lookup(id)
				if !ok {
					return outputError(errors.NewNotFound(id))
				}
				if err := validServings(servings, cfg); err != nil {
					return outputError(err)
				}
				components = append(components, food.Serving{Food: cf, Servings: servings})
			}

			f, err := t.Catalog.AddCompositeFood(name, parseKeywords(c.String("keywords")), components)
			if err != nil {
				return outputError(err)
			}
			if err := t.SaveCatalog(); err != nil {
				return outputError(err)
			}

			return outputJSON(tracker.NewFoodView(f))
		},
	}
}

// foodSearchCmd creates the food search command.
func foodSearchCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search foods by keywords",
		ArgsUsage: "[keyword]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "Require every keyword instead of at least one"},
		},
		Action: func(c *cli.Context) error {
			matches := t.Catalog.Search(c.Args().Slice(), c.Bool("all"))
			return outputJSON(map[string]any{
				"count": len(matches),
				"foods": tracker.NewFoodViews(matches),
			})
		},
	}
}

// foodListCmd creates the food list command.
func foodListCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every food in the catalog",
		Action: func(c *cli.Context) error {
			foods := t.Catalog.All()
			return outputJSON(map[string]any{
				"count": len(foods),
				"foods": tracker.NewFoodViews(foods),
			})
		},
	}
}

// foodImportCmd creates the food import command.
func foodImportCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Bulk-import basic foods from a SQLite nutrition database",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "skip", Usage: "Collision mode: skip|fail"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected a database path"))
			}

			mode := importer.ModeSkip
			if c.String("mode") == "fail" {
				mode = importer.ModeFail
			}

			output, err := importer.Import(t.Catalog, importer.Input{
				Path: c.Args().First(),
				Mode: mode,
			})
			if err != nil {
				return outputError(err)
			}
			if output.Imported > 0 {
				if err := t.SaveCatalog(); err != nil {
					return outputError(err)
				}
			}

			return outputJSON(output)
		},
	}
}

// logCmd groups the daily log commands.
func logCmd(t *tracker.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Manage the daily food log",
		Subcommands: []*cli.Command{
			logAddCmd(t, cfg),
			logRemoveCmd(t),
			logShowCmd(t),
			logTotalCmd(t),
			logSummaryCmd(t),
		},
	}
}

// logAddCmd creates the log add command.
func logAddCmd(t *tracker.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Log servings of a food on a date",
		ArgsUsage: "<food>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Calendar date (YYYY-MM-DD)", Required: true},
			&cli.Float64Flag{Name: "servings", Aliases: []string{"s"}, Value: 1, Usage: "Servings consumed"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected exactly one food name"))
			}

			date, err := dailylog.ParseDate(c.String("date"))
			if err != nil {
				return outputError(err)
			}
			f, ok := t.Catalog.Lookup(c.Args().First())
			if !ok {
				return outputError(errors.NewNotFound(c.Args().First()))
			}
			servings := c.Float64("servings")
			if err := validServings(servings, cfg); err != nil {
				return outputError(err)
			}

			t.Log.Add(date, food.Serving{Food: f, Servings: servings})
			if err := t.SaveLog(); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"date":           date,
				"entries":        tracker.NewServingViews(t.Log.ServingsForDate(date)),
				"total_calories": t.Log.TotalCalories(date),
			})
		},
	}
}

// logRemoveCmd creates the log remove command.
func logRemoveCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a logged serving from a date",
		ArgsUsage: "<food>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Calendar date (YYYY-MM-DD)", Required: true},
			&cli.Float64Flag{Name: "servings", Aliases: []string{"s"}, Value: 1, Usage: "Servings count of the entry"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected exactly one food name"))
			}

			date, err := dailylog.ParseDate(c.String("date"))
			if err != nil {
				return outputError(err)
			}
			f, ok := t.Catalog.Lookup(c.Args().First())
			if !ok {
				return outputError(errors.NewNotFound(c.Args().First()))
			}

			if !t.Log.Remove(date, food.Serving{Food: f, Servings: c.Float64("servings")}) {
				return outputError(errors.NewNotFound(c.Args().First()))
			}
			if err := t.SaveLog(); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"date":           date,
				"entries":        tracker.NewServingViews(t.Log.ServingsForDate(date)),
				"total_calories": t.Log.TotalCalories(date),
			})
		},
	}
}

// logShowCmd creates the log show command.
func logShowCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the logged servings for a date",
		ArgsUsage: "<date>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected a date (YYYY-MM-DD)"))
			}
			date, err := dailylog.ParseDate(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"date":    date,
				"entries": tracker.NewServingViews(t.Log.ServingsForDate(date)),
			})
		},
	}
}

// logTotalCmd creates the log total command.
func logTotalCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "total",
		Usage:     "Total calories logged on a date",
		ArgsUsage: "<date>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("expected a date (YYYY-MM-DD)"))
			}
			date, err := dailylog.ParseDate(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"date":           date,
				"total_calories": t.Log.TotalCalories(date),
			})
		},
	}
}

// logSummaryCmd creates the log summary command.
func logSummaryCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Per-day calorie totals over a date range",
		ArgsUsage: "<start-date> <end-date>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return outputError(errors.NewInvalidRequest("expected start and end dates (YYYY-MM-DD)"))
			}
			start, err := dailylog.ParseDate(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}
			end, err := dailylog.ParseDate(c.Args().Get(1))
			if err != nil {
				return outputError(err)
			}
			if end < start {
				return outputError(errors.NewInvalidRequest("end date precedes start date"))
			}

			summary := t.Log.CalorieSummary(start, end)
			return outputJSON(map[string]any{
				"start_date": start,
				"end_date":   end,
				"days":       tracker.NewSummaryViews(t.Log, summary),
			})
		},
	}
}

// targetCmd creates the target command.
func targetCmd() *cli.Command {
	return &cli.Command{
		Name:  "target",
		Usage: "Compute a daily calorie target from a profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gender", Aliases: []string{"g"}, Usage: "male or female", Required: true},
			&cli.Float64Flag{Name: "weight", Aliases: []string{"w"}, Usage: "Body weight in kilograms", Required: true},
			&cli.Float64Flag{Name: "height", Usage: "Height in centimeters", Required: true},
			&cli.IntFlag{Name: "age", Aliases: []string{"a"}, Usage: "Age in years", Required: true},
			&cli.StringFlag{Name: "activity", Value: "sedentary", Usage: "sedentary|lightly_active|moderately_active|very_active|extra_active"},
			&cli.StringFlag{Name: "strategy", Usage: "harris-benedict or mifflin-st-jeor (default)"},
		},
		Action: func(c *cli.Context) error {
			profile, strategy, err := parseProfile(c)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"strategy":     strategy.Name(),
				"daily_target": strategy.DailyTarget(profile),
			})
		},
	}
}

// reportCmd creates the report command.
func reportCmd(t *tracker.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Build a calorie report over a date range",
		ArgsUsage: "<start-date> <end-date>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "html", Usage: "Write the report as HTML to this path"},
			&cli.Float64Flag{Name: "target", Usage: "Daily calorie target to compare against"},
			&cli.StringFlag{Name: "target-name", Usage: "Label for the target column"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return outputError(errors.NewInvalidRequest("expected start and end dates (YYYY-MM-DD)"))
			}
			start, err := dailylog.ParseDate(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}
			end, err := dailylog.ParseDate(c.Args().Get(1))
			if err != nil {
				return outputError(err)
			}
			if end < start {
				return outputError(errors.NewInvalidRequest("end date precedes start date"))
			}

			markdown := report.Build(t.Log, report.Input{
				Start:      start,
				End:        end,
				Target:     c.Float64("target"),
				TargetName: c.String("target-name"),
			})

			if path := c.String("html"); path != "" {
				if err := report.WriteHTML(markdown, path); err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]any{"written": path})
			}

			fmt.Fprint(os.Stdout, markdown)
			return nil
		},
	}
}

// parseProfile maps the target flags to a validated profile and strategy.
func parseProfile(c *cli.Context) (diet.Profile, diet.Strategy, error) {
	gender, err := diet.ParseGender(c.String("gender"))
	if err != nil {
		return diet.Profile{}, nil, err
	}
	activity, err := diet.ParseActivityLevel(c.String("activity"))
	if err != nil {
		return diet.Profile{}, nil, err
	}
	strategy, err := diet.StrategyByName(c.String("strategy"))
	if err != nil {
		return diet.Profile{}, nil, err
	}

	profile := diet.Profile{
		Gender:   gender,
		WeightKg: c.Float64("weight"),
		HeightCm: c.Float64("height"),
		Age:      c.Int("age"),
		Activity: activity,
	}
	if err := profile.Validate(); err != nil {
		return diet.Profile{}, nil, err
	}
	return profile, strategy, nil
}

// outputJSON prints pretty JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if yadaErr, ok := err.(*errors.YadaError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", yadaErr.Code, yadaErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// validServings rejects servings counts outside (0, cfg.MaxServings].
func validServings(servings float64, cfg *config.Config) error {
	if servings <= 0 {
		return errors.NewInvalidRequest("servings must be positive")
	}
	if servings > cfg.MaxServings {
		return errors.NewInvalidRequest(fmt.Sprintf("servings exceeds limit of %g", cfg.MaxServings))
	}
	return nil
}

// parseKeywords splits a comma-separated string into a slice of keywords.
func parseKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		k := strings.TrimSpace(p)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// parseComponent parses a "food:servings" argument. The servings part
// is optional and defaults to 1.
func parseComponent(s string) (string, float64, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		if s == "" {
			return "", 0, errors.NewInvalidRequest("component must not be empty")
		}
		return s, 1, nil
	}

	id := s[:idx]
	if id == "" {
		return "", 0, errors.NewInvalidRequest("component must name a food")
	}
	servings, err := strconv.ParseFloat(s[idx+1:], 64)
	if err != nil {
		return "", 0, errors.NewInvalidRequest(fmt.Sprintf("invalid servings in %q", s))
	}
	return id, servings, nil
}
