package profile

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Competencies maps competency names to proficiency scores, keeping the order
// in which names were inserted.
type Competencies = orderedmap.OrderedMap[string, float64]

// Competency is a single name/score pair.
type Competency = orderedmap.Pair[string, float64]

// NewCompetencies builds an ordered competency map from pairs. Later pairs
// overwrite earlier ones with the same name without moving them.
func NewCompetencies(pairs ...Competency) *Competencies {
	c := orderedmap.New[string, float64]()
	for _, pair := range pairs {
		c.Set(pair.Key, pair.Value)
	}
	return c
}

// C is shorthand for a competency pair.
func C(name string, score float64) Competency {
	return Competency{Key: name, Value: score}
}

// CompetencyNames returns the names in insertion order.
func CompetencyNames(c *Competencies) []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, c.Len())
	for pair := c.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func cloneCompetencies(c *Competencies) *Competencies {
	if c == nil {
		return nil
	}
	clone := orderedmap.New[string, float64]()
	for pair := c.Oldest(); pair != nil; pair = pair.Next() {
		clone.Set(pair.Key, pair.Value)
	}
	return clone
}
