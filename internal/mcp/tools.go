package mcp

import "github.com/mark3labs/mcp-go/mcp"

var stringItems = map[string]any{"type": "string"}

var componentItems = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"food":     map[string]any{"type": "string", "description": "Identifier of an existing food"},
		"servings": map[string]any{"type": "number", "description": "Servings of that food"},
	},
	"required": []string{"food", "servings"},
}

var foodAddToolDef = mcp.NewTool("food_add",
	mcp.WithDescription("Add a basic food with a fixed calorie count per serving."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Unique food identifier")),
	mcp.WithArray("keywords", mcp.Description("Search keywords"), mcp.Items(stringItems)),
	mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories per serving")),
)

var foodComposeToolDef = mcp.NewTool("food_compose",
	mcp.WithDescription("Create a composite food from servings of existing foods. Calories are derived from the components."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Unique food identifier")),
	mcp.WithArray("keywords", mcp.Description("Search keywords"), mcp.Items(stringItems)),
	mcp.WithArray("components", mcp.Required(), mcp.Description("Component servings; must not be empty"), mcp.Items(componentItems)),
)

var foodSearchToolDef = mcp.NewTool("food_search",
	mcp.WithDescription("Search foods by keywords. Empty keywords match every food."),
	mcp.WithArray("keywords", mcp.Description("Keywords to match (case-insensitive)"), mcp.Items(stringItems)),
	mcp.WithBoolean("match_all", mcp.Description("Require every keyword instead of at least one")),
)

var foodListToolDef = mcp.NewTool("food_list",
	mcp.WithDescription("List every food in the catalog, basic foods first."),
)

var foodImportToolDef = mcp.NewTool("food_import",
	mcp.WithDescription("Bulk-import basic foods from a SQLite nutrition database (table: foods)."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to the SQLite file")),
	mcp.WithString("mode", mcp.Description("Collision mode: skip|fail (default skip)")),
)

var logAddToolDef = mcp.NewTool("log_add",
	mcp.WithDescription("Log servings of a food on a date."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
	mcp.WithString("food", mcp.Required(), mcp.Description("Identifier of an existing food")),
	mcp.WithNumber("servings", mcp.Required(), mcp.Description("Servings consumed")),
)

var logRemoveToolDef = mcp.NewTool("log_remove",
	mcp.WithDescription("Remove a logged serving (matched by food and servings count) from a date."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
	mcp.WithString("food", mcp.Required(), mcp.Description("Food identifier of the entry")),
	mcp.WithNumber("servings", mcp.Required(), mcp.Description("Servings count of the entry")),
)

var logUndoToolDef = mcp.NewTool("log_undo",
	mcp.WithDescription("Undo the most recent log mutation in this session."),
)

var logShowToolDef = mcp.NewTool("log_show",
	mcp.WithDescription("Show the logged servings for a date, in log order."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
)

var logTotalToolDef = mcp.NewTool("log_total",
	mcp.WithDescription("Total calories logged on a date."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
)

var logSummaryToolDef = mcp.NewTool("log_summary",
	mcp.WithDescription("Per-day calorie totals over an inclusive date range. Days with no entries are omitted."),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("Range start, YYYY-MM-DD")),
	mcp.WithString("end_date", mcp.Required(), mcp.Description("Range end, YYYY-MM-DD")),
)

var dietTargetToolDef = mcp.NewTool("diet_target",
	mcp.WithDescription("Compute a daily calorie target from a profile."),
	mcp.WithString("gender", mcp.Required(), mcp.Description("male or female")),
	mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Body weight in kilograms")),
	mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimeters")),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
	mcp.WithString("activity", mcp.Required(), mcp.Description("sedentary|lightly_active|moderately_active|very_active|extra_active")),
	mcp.WithString("strategy", mcp.Description("harris-benedict or mifflin-st-jeor (default)")),
)
