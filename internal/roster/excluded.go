package roster

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spigell/tutor-features/internal/profile"
)

type ExcludedProfiles struct {
	Items []*ExcludedProfile
}

type ExcludedProfile struct {
	ID         string
	Kind       profile.Kind
	ExcludedAt time.Time
}

func (r *Roster) ToExcluded() *ExcludedProfiles {
	excluded := &ExcludedProfiles{}
	now := time.Now().UTC()
	for _, p := range r.Profiles() {
		excluded.Items = append(excluded.Items, &ExcludedProfile{
			ID:         p.ID(),
			Kind:       p.Kind(),
			ExcludedAt: now,
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. An empty file yields an empty list.
func GetExcludedFromFile(path string) (*ExcludedProfiles, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedProfiles{}, nil
	}

	var excluded ExcludedProfiles
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedProfiles) Append(s *ExcludedProfiles) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedProfiles) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Refs returns the entries as profile references. Entries written without a
// kind match profiles of either kind.
func (e *ExcludedProfiles) Refs() []Ref {
	refs := make([]Ref, 0, len(e.Items))
	for _, item := range e.Items {
		refs = append(refs, Ref{Kind: item.Kind, ID: item.ID})
	}
	return refs
}

func (e *ExcludedProfiles) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
