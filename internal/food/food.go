package food

// Food is the common capability of everything the catalog can hold:
// a globally unique identifier, a keyword set for searching, and a
// calorie count per serving.
type Food interface {
	// Identifier returns the unique name of this food. Immutable.
	Identifier() string

	// Keywords returns the search keywords. Matching is case-insensitive.
	Keywords() []string

	// CaloriesPerServing returns the calories in one serving.
	CaloriesPerServing() float64
}

// BasicFood is a food with a stored calorie constant.
type BasicFood struct {
	identifier string
	keywords   []string
	calories   float64
}

// NewBasicFood creates a basic food. The keyword slice is copied so the
// food is immutable after construction.
func NewBasicFood(identifier string, keywords []string, calories float64) *BasicFood {
	return &BasicFood{
		identifier: identifier,
		keywords:   copyStrings(keywords),
		calories:   calories,
	}
}

func (f *BasicFood) Identifier() string { return f.identifier }

func (f *BasicFood) Keywords() []string { return copyStrings(f.keywords) }

func (f *BasicFood) CaloriesPerServing() float64 { return f.calories }

// CompositeFood is a food made from servings of other foods. Components
// may themselves be composites; the catalog only constructs composites
// from foods that already exist, so the component graph is acyclic.
type CompositeFood struct {
	identifier string
	keywords   []string
	components []Serving
}

// NewCompositeFood creates a composite food. Component and keyword
// slices are copied; components are immutable after construction.
func NewCompositeFood(identifier string, keywords []string, components []Serving) *CompositeFood {
	comps := make([]Serving, len(components))
	copy(comps, components)
	return &CompositeFood{
		identifier: identifier,
		keywords:   copyStrings(keywords),
		components: comps,
	}
}

func (f *CompositeFood) Identifier() string { return f.identifier }

func (f *CompositeFood) Keywords() []string { return copyStrings(f.keywords) }

// CaloriesPerServing walks the component tree on every call. Nothing is
// cached: catalogs are small and lazy recomputation avoids any
// invalidation concern.
func (f *CompositeFood) CaloriesPerServing() float64 {
	var total float64
	for _, c := range f.components {
		total += c.Food.CaloriesPerServing() * c.Servings
	}
	return total
}

// Components returns a copy of the component servings.
func (f *CompositeFood) Components() []Serving {
	comps := make([]Serving, len(f.components))
	copy(comps, f.components)
	return comps
}

// Serving pairs a food reference with a servings count. The food is
// shared, not owned; its lifetime is governed by the catalog or caller.
type Serving struct {
	Food     Food
	Servings float64
}

// Equal reports value equality: same food identifier, same count.
func (s Serving) Equal(o Serving) bool {
	return s.Food.Identifier() == o.Food.Identifier() && s.Servings == o.Servings
}

// Calories returns the calories contributed by this serving.
func (s Serving) Calories() float64 {
	return s.Food.CaloriesPerServing() * s.Servings
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
