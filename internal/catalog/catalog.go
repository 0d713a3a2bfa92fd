// Package catalog owns the set of foods: it enforces identifier
// uniqueness, answers keyword search queries, and persists foods to the
// pipe-delimited text format.
package catalog

import (
	"yada/internal/errors"
	"yada/internal/food"
)

// Catalog holds basic and composite foods in two mappings with disjoint
// key spaces. The catalog owns every food it creates; search results are
// shared read-only references. Not safe for concurrent mutation.
type Catalog struct {
	basic     map[string]*food.BasicFood
	composite map[string]*food.CompositeFood

	// Insertion order per group. Search output is basic foods first,
	// then composites, each group in insertion order.
	basicOrder     []string
	compositeOrder []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		basic:     make(map[string]*food.BasicFood),
		composite: make(map[string]*food.CompositeFood),
	}
}

// AddBasicFood inserts a basic food. Fails with DUPLICATE_IDENTIFIER if
// the identifier exists in either group; on failure nothing changes.
func (c *Catalog) AddBasicFood(identifier string, keywords []string, calories float64) (*food.BasicFood, error) {
	if err := c.checkUnique(identifier); err != nil {
		return nil, err
	}

	f := food.NewBasicFood(identifier, keywords, calories)
	c.basic[identifier] = f
	c.basicOrder = append(c.basicOrder, identifier)
	return f, nil
}

// AddCompositeFood inserts a composite food built from servings of foods
// already known to the caller. Fails with DUPLICATE_IDENTIFIER on a used
// identifier and EMPTY_COMPOSITION when components is empty. Calories are
// not computed here; CompositeFood recomputes them lazily on each call.
func (c *Catalog) AddCompositeFood(identifier string, keywords []string, components []food.Serving) (*food.CompositeFood, error) {
	if err := c.checkUnique(identifier); err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, errors.NewEmptyComposition(identifier)
	}

	f := food.NewCompositeFood(identifier, keywords, components)
	c.composite[identifier] = f
	c.compositeOrder = append(c.compositeOrder, identifier)
	return f, nil
}

// Lookup returns the food with the given identifier, from either group.
func (c *Catalog) Lookup(identifier string) (food.Food, bool) {
	if f, ok := c.basic[identifier]; ok {
		return f, true
	}
	if f, ok := c.composite[identifier]; ok {
		return f, true
	}
	return nil, false
}

// Search returns all foods whose keyword set matches the query: every
// keyword for matchAll, at least one otherwise. An empty query matches
// everything. An empty result is not an error.
func (c *Catalog) Search(keywords []string, matchAll bool) []food.Food {
	results := make([]food.Food, 0)
	for _, id := range c.basicOrder {
		if food.Matches(c.basic[id], keywords, matchAll) {
			results = append(results, c.basic[id])
		}
	}
	for _, id := range c.compositeOrder {
		if food.Matches(c.composite[id], keywords, matchAll) {
			results = append(results, c.composite[id])
		}
	}
	return results
}

// All returns every food, basic group first, in insertion order.
func (c *Catalog) All() []food.Food {
	return c.Search(nil, false)
}

// Len returns the total number of foods in both groups.
func (c *Catalog) Len() int {
	return len(c.basic) + len(c.composite)
}

func (c *Catalog) checkUnique(identifier string) error {
	if identifier == "" {
		return errors.NewInvalidRequest("identifier must not be empty")
	}
	if _, ok := c.basic[identifier]; ok {
		return errors.NewDuplicateIdentifier(identifier)
	}
	if _, ok := c.composite[identifier]; ok {
		return errors.NewDuplicateIdentifier(identifier)
	}
	return nil
}
