package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/tutor-features/internal/profile"
	"github.com/spigell/tutor-features/internal/roster"
)

type tutorTypesFilter struct {
	toggle

	types []profile.TutorType
}

// NewTutorTypes creates a filter that keeps only tutors of the configured types.
func NewTutorTypes() Filter {
	return &tutorTypesFilter{}
}

func (f *tutorTypesFilter) Name() string { return "tutor_types" }

func (f *tutorTypesFilter) Validate(cfg *Config) error {
	f.types = nil
	if cfg == nil {
		return nil
	}
	for _, raw := range cfg.TutorTypes {
		t, err := profile.ParseTutorType(string(raw))
		if err != nil {
			return fmt.Errorf("tutor types: %w", err)
		}
		f.types = append(f.types, t)
	}
	return nil
}

func (f *tutorTypesFilter) Apply(_ context.Context, deps Deps, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()
	if len(f.types) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.KeepTutorTypes(f.types)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding tutors by type",
			zap.Strings("kept_types", f.typeNames()),
			zap.Strings("excluded_profiles", dropped),
			zap.Int("profiles_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *tutorTypesFilter) typeNames() []string {
	names := make([]string, 0, len(f.types))
	for _, t := range f.types {
		names = append(names, string(t))
	}
	return names
}

func (f *tutorTypesFilter) Status() Status {
	details := map[string]string{}
	if len(f.types) > 0 {
		details["tutor_types"] = strings.Join(f.typeNames(), ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
