package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"yada/internal/config"
	"yada/internal/dailylog"
	"yada/internal/diet"
	"yada/internal/errors"
	"yada/internal/food"
	"yada/internal/importer"
	"yada/internal/tracker"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	tracker *tracker.Tracker
	cfg     *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(t *tracker.Tracker, cfg *config.Config) *Handlers {
	return &Handlers{tracker: t, cfg: cfg}
}

// Request types for each tool

// FoodAddRequest represents the arguments for food_add.
type FoodAddRequest struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
	Calories float64  `json:"calories"`
}

// FoodComposeRequest represents the arguments for food_compose.
type FoodComposeRequest struct {
	Name       string             `json:"name"`
	Keywords   []string           `json:"keywords,omitempty"`
	Components []ComponentRequest `json:"components"`
}

// ComponentRequest is one component of a composite food.
type ComponentRequest struct {
	Food     string  `json:"food"`
	Servings float64 `json:"servings"`
}

// FoodSearchRequest represents the arguments for food_search.
type FoodSearchRequest struct {
	Keywords []string `json:"keywords,omitempty"`
	MatchAll bool     `json:"match_all,omitempty"`
}

// FoodImportRequest represents the arguments for food_import.
type FoodImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// LogEntryRequest represents the arguments for log_add and log_remove.
type LogEntryRequest struct {
	Date     string  `json:"date"`
	Food     string  `json:"food"`
	Servings float64 `json:"servings"`
}

// LogDateRequest represents the arguments for log_show and log_total.
type LogDateRequest struct {
	Date string `json:"date"`
}

// LogSummaryRequest represents the arguments for log_summary.
type LogSummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DietTargetRequest represents the arguments for diet_target.
type DietTargetRequest struct {
	Gender   string  `json:"gender"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Age      int     `json:"age"`
	Activity string  `json:"activity"`
	Strategy string  `json:"strategy,omitempty"`
}

// validServings rejects servings counts outside (0, cfg.MaxServings].
func (h *Handlers) validServings(servings float64) error {
	if servings <= 0 {
		return errors.NewInvalidRequest("servings must be positive")
	}
	if servings > h.cfg.MaxServings {
		return errors.NewInvalidRequest(fmt.Sprintf("servings exceeds limit of %g", h.cfg.MaxServings))
	}
	return nil
}

// Handler implementations

// HandleFoodAdd handles the food_add tool call.
func (h *Handlers) HandleFoodAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FoodAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Calories < 0 {
		return errorResult(errors.NewInvalidRequest("calories must not be negative")), nil
	}

	f, err := h.tracker.Catalog.AddBasicFood(input.Name, input.Keywords, input.Calories)
	if err != nil {
		return errorResult(err), nil
	}
	if err := h.tracker.SaveCatalog(); err != nil {
		return errorResult(err), nil
	}

	return successResult(tracker.NewFoodView(f))
}

// HandleFoodCompose handles the food_compose tool call.
func (h *Handlers) HandleFoodCompose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FoodComposeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	components := make([]food.Serving, 0, len(input.Components))
	for _, c := range input.Components {
		cf, ok := h.tracker.Catalog.Lookup(c.Food)
		if !ok {
			return errorResult(errors.NewNotFound(c.Food)), nil
		}
		if err := h.validServings(c.Servings); err != nil {
			return errorResult(err), nil
		}
		components = append(components, food.Serving{Food: cf, Servings: c.Servings})
	}

	f, err := h.tracker.Catalog.AddCompositeFood(input.Name, input.Keywords, components)
	if err != nil {
		return errorResult(err), nil
	}
	if err := h.tracker.SaveCatalog(); err != nil {
		return errorResult(err), nil
	}

	return successResult(tracker.NewFoodView(f))
}

// HandleFoodSearch handles the food_search tool call.
func (h *Handlers) HandleFoodSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FoodSearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	matches := h.tracker.Catalog.Search(input.Keywords, input.MatchAll)
	return successResult(map[string]any{
		"count": len(matches),
		"foods": tracker.NewFoodViews(matches),
	})
}

// HandleFoodList handles the food_list tool call.
func (h *Handlers) HandleFoodList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	foods := h.tracker.Catalog.All()
	return successResult(map[string]any{
		"count": len(foods),
		"foods": tracker.NewFoodViews(foods),
	})
}

// HandleFoodImport handles the food_import tool call.
func (h *Handlers) HandleFoodImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FoodImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	mode := importer.ModeSkip
	if input.Mode == "fail" {
		mode = importer.ModeFail
	}

	result, err := importer.Import(h.tracker.Catalog, importer.Input{
		Path: input.Path,
		Mode: mode,
	})
	if err != nil {
		return errorResult(err), nil
	}
	if result.Imported > 0 {
		if err := h.tracker.SaveCatalog(); err != nil {
			return errorResult(err), nil
		}
	}

	return successResult(result)
}

// HandleLogAdd handles the log_add tool call.
func (h *Handlers) HandleLogAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	date, err := dailylog.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}
	f, ok := h.tracker.Catalog.Lookup(input.Food)
	if !ok {
		return errorResult(errors.NewNotFound(input.Food)), nil
	}
	if err := h.validServings(input.Servings); err != nil {
		return errorResult(err), nil
	}

	h.tracker.Log.Add(date, food.Serving{Food: f, Servings: input.Servings})
	if err := h.tracker.SaveLog(); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"date":           date,
		"entries":        tracker.NewServingViews(h.tracker.Log.ServingsForDate(date)),
		"total_calories": h.tracker.Log.TotalCalories(date),
	})
}

// HandleLogRemove handles the log_remove tool call.
func (h *Handlers) HandleLogRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	date, err := dailylog.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}
	f, ok := h.tracker.Catalog.Lookup(input.Food)
	if !ok {
		return errorResult(errors.NewNotFound(input.Food)), nil
	}

	if !h.tracker.Log.Remove(date, food.Serving{Food: f, Servings: input.Servings}) {
		return errorResult(errors.NewNotFound(input.Food)), nil
	}
	if err := h.tracker.SaveLog(); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"date":           date,
		"entries":        tracker.NewServingViews(h.tracker.Log.ServingsForDate(date)),
		"total_calories": h.tracker.Log.TotalCalories(date),
	})
}

// HandleLogUndo handles the log_undo tool call.
func (h *Handlers) HandleLogUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.tracker.Log.Undo() {
		return errorResult(errors.NewInvalidRequest("nothing to undo")), nil
	}
	if err := h.tracker.SaveLog(); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"undone":   true,
		"can_undo": h.tracker.Log.CanUndo(),
	})
}

// HandleLogShow handles the log_show tool call.
func (h *Handlers) HandleLogShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogDateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	date, err := dailylog.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"date":    date,
		"entries": tracker.NewServingViews(h.tracker.Log.ServingsForDate(date)),
	})
}

// HandleLogTotal handles the log_total tool call.
func (h *Handlers) HandleLogTotal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogDateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	date, err := dailylog.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"date":           date,
		"total_calories": h.tracker.Log.TotalCalories(date),
	})
}

// HandleLogSummary handles the log_summary tool call.
func (h *Handlers) HandleLogSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogSummaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	start, err := dailylog.ParseDate(input.StartDate)
	if err != nil {
		return errorResult(err), nil
	}
	end, err := dailylog.ParseDate(input.EndDate)
	if err != nil {
		return errorResult(err), nil
	}
	if end < start {
		return errorResult(errors.NewInvalidRequest("end_date precedes start_date")), nil
	}

	summary := h.tracker.Log.CalorieSummary(start, end)
	return successResult(map[string]any{
		"start_date": start,
		"end_date":   end,
		"days":       tracker.NewSummaryViews(h.tracker.Log, summary),
	})
}

// HandleDietTarget handles the diet_target tool call.
func (h *Handlers) HandleDietTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DietTargetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	gender, err := diet.ParseGender(input.Gender)
	if err != nil {
		return errorResult(err), nil
	}
	activity, err := diet.ParseActivityLevel(input.Activity)
	if err != nil {
		return errorResult(err), nil
	}
	strategy, err := diet.StrategyByName(input.Strategy)
	if err != nil {
		return errorResult(err), nil
	}

	profile := diet.Profile{
		Gender:   gender,
		WeightKg: input.WeightKg,
		HeightCm: input.HeightCm,
		Age:      input.Age,
		Activity: activity,
	}
	if err := profile.Validate(); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"strategy":     strategy.Name(),
		"daily_target": strategy.DailyTarget(profile),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var yadaErr *errors.YadaError
	if stderrors.As(err, &yadaErr) {
		message := yadaErr.Message
		if wrapped := err.Error(); wrapped != yadaErr.Error() {
			// Keep the wrapper context added by callers.
			message = wrapped
		}
		errorObj := map[string]any{
			"code":    yadaErr.Code,
			"message": message,
			"status":  yadaErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if yadaErr.Code != errors.ErrInternal && yadaErr.Code != errors.ErrPersistenceFailure && yadaErr.Details != nil {
			errorObj["details"] = yadaErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
