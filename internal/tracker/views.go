package tracker

import (
	"yada/internal/dailylog"
	"yada/internal/food"
)

// FoodView is the JSON shape of a food for CLI and MCP output.
type FoodView struct {
	Identifier string          `json:"identifier"`
	Keywords   []string        `json:"keywords,omitempty"`
	Calories   float64         `json:"calories_per_serving"`
	Type       string          `json:"type"` // "basic" or "composite"
	Components []ComponentView `json:"components,omitempty"`
}

// ComponentView is one component of a composite food.
type ComponentView struct {
	Identifier string  `json:"identifier"`
	Servings   float64 `json:"servings"`
}

// ServingView is the JSON shape of a logged serving.
type ServingView struct {
	Identifier string  `json:"identifier"`
	Servings   float64 `json:"servings"`
	Calories   float64 `json:"calories"`
}

// NewFoodView builds the output view for a food.
func NewFoodView(f food.Food) FoodView {
	v := FoodView{
		Identifier: f.Identifier(),
		Keywords:   f.Keywords(),
		Calories:   f.CaloriesPerServing(),
		Type:       "basic",
	}
	if cf, ok := f.(*food.CompositeFood); ok {
		v.Type = "composite"
		for _, comp := range cf.Components() {
			v.Components = append(v.Components, ComponentView{
				Identifier: comp.Food.Identifier(),
				Servings:   comp.Servings,
			})
		}
	}
	return v
}

// NewFoodViews builds output views for a food list, preserving order.
func NewFoodViews(foods []food.Food) []FoodView {
	views := make([]FoodView, len(foods))
	for i, f := range foods {
		views[i] = NewFoodView(f)
	}
	return views
}

// NewServingViews builds output views for a date's servings in log order.
func NewServingViews(servings []food.Serving) []ServingView {
	views := make([]ServingView, len(servings))
	for i, s := range servings {
		views[i] = ServingView{
			Identifier: s.Food.Identifier(),
			Servings:   s.Servings,
			Calories:   s.Calories(),
		}
	}
	return views
}

// SummaryView is a calorie summary sorted by date.
type SummaryView struct {
	Date     dailylog.Date `json:"date"`
	Calories float64       `json:"calories"`
}

// NewSummaryViews sorts a calorie summary chronologically.
func NewSummaryViews(log *dailylog.Log, summary map[dailylog.Date]float64) []SummaryView {
	views := make([]SummaryView, 0, len(summary))
	for _, date := range log.Dates() {
		if cal, ok := summary[date]; ok {
			views = append(views, SummaryView{Date: date, Calories: cal})
		}
	}
	return views
}
