package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"yada/internal/errors"
	"yada/internal/food"
)

// Persistence format (line-oriented, pipe-delimited; fields must not
// contain '|' or ',', a known format limitation):
//
//	basic:     identifier|kw1,kw2|caloriesPerServing
//	composite: identifier|kw1,kw2|componentId:servings;componentId:servings
//
// Composite components are resolved against foods loaded earlier in the
// same pass: all basic foods plus composites from earlier lines. A
// component referencing an unknown identifier is silently dropped.

// Save writes both groups to the given paths, rewriting each file
// whole. A failure aborts that file and reports PERSISTENCE_FAILURE;
// in-memory state is unaffected.
func (c *Catalog) Save(basicPath, compositePath string) error {
	if err := c.saveBasic(basicPath); err != nil {
		return err
	}
	return c.saveComposite(compositePath)
}

func (c *Catalog) saveBasic(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, id := range c.basicOrder {
		bf := c.basic[id]
		fmt.Fprintf(w, "%s|%s|%.2f\n", bf.Identifier(), strings.Join(bf.Keywords(), ","), bf.CaloriesPerServing())
	}
	if err := w.Flush(); err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	return nil
}

func (c *Catalog) saveComposite(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, id := range c.compositeOrder {
		cf := c.composite[id]
		parts := make([]string, 0, len(cf.Components()))
		for _, comp := range cf.Components() {
			parts = append(parts, comp.Food.Identifier()+":"+strconv.FormatFloat(comp.Servings, 'g', -1, 64))
		}
		fmt.Fprintf(w, "%s|%s|%s\n", cf.Identifier(), strings.Join(cf.Keywords(), ","), strings.Join(parts, ";"))
	}
	if err := w.Flush(); err != nil {
		return errors.NewPersistenceFailure(path, err)
	}
	return nil
}

// Load reads both groups into the catalog. A missing file means an
// empty group, not an error. Malformed lines are skipped. Composite
// lines are loaded after all basic foods, in file order, so a composite
// may reference any basic food and any composite defined on an earlier
// line.
func (c *Catalog) Load(basicPath, compositePath string) error {
	if err := c.loadBasic(basicPath); err != nil {
		return err
	}
	return c.loadComposite(compositePath)
}

func (c *Catalog) loadBasic(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		identifier := strings.TrimSpace(parts[0])
		calories, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			continue
		}
		// Duplicate lines keep the first occurrence.
		_, _ = c.AddBasicFood(identifier, splitKeywords(parts[1]), calories)
	}
	return nil
}

func (c *Catalog) loadComposite(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		identifier := strings.TrimSpace(parts[0])

		components := make([]food.Serving, 0)
		for _, compPart := range strings.Split(parts[2], ";") {
			fields := strings.SplitN(compPart, ":", 2)
			if len(fields) != 2 {
				continue
			}
			servings, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
			if err != nil {
				continue
			}
			// Unknown component identifiers are dropped without
			// comment; only already-loaded foods resolve.
			comp, ok := c.Lookup(strings.TrimSpace(fields[0]))
			if !ok {
				continue
			}
			components = append(components, food.Serving{Food: comp, Servings: servings})
		}
		if len(components) == 0 {
			continue
		}
		_, _ = c.AddCompositeFood(identifier, splitKeywords(parts[1]), components)
	}
	return nil
}

// readLines reads a data file into trimmed, non-empty lines. A missing
// file yields no lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceFailure(path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewPersistenceFailure(path, err)
	}
	return lines, nil
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
