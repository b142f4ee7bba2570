package roster

import (
	"encoding/json"
	"os"

	"github.com/spigell/tutor-features/internal/profile"
)

// Vector is the feature vector of one profile.
type Vector struct {
	Kind     profile.Kind `json:"kind"`
	ID       string       `json:"id"`
	Features []float64    `json:"features"`
}

type Vectors struct {
	Items []*Vector `json:"items"`
}

// Extract computes the feature vector of every profile, learners first.
func (r *Roster) Extract() *Vectors {
	vectors := &Vectors{Items: make([]*Vector, 0, r.Len())}
	for _, p := range r.Profiles() {
		vectors.Items = append(vectors.Items, &Vector{
			Kind:     p.Kind(),
			ID:       p.ID(),
			Features: p.ExtractFeatures(),
		})
	}
	return vectors
}

func (v *Vectors) Len() int {
	return len(v.Items)
}

// Dimensions returns the distinct vector lengths in first-seen order. More
// than one entry means the vectors cannot be compared position by position.
func (v *Vectors) Dimensions() []int {
	var dims []int
	seen := make(map[int]struct{})
	for _, item := range v.Items {
		n := len(item.Features)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		dims = append(dims, n)
	}
	return dims
}

func (v *Vectors) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "vectors_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (v *Vectors) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
