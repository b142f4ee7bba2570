package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/tutor-features/internal/roster"
)

type scheduleCheckFilter struct {
	toggle

	drop bool
}

// NewScheduleCheck creates a step that reports malformed availability
// schedules and optionally drops the profiles carrying them.
func NewScheduleCheck() Filter {
	return &scheduleCheckFilter{}
}

func (f *scheduleCheckFilter) Name() string { return "schedule_check" }

func (f *scheduleCheckFilter) Validate(cfg *Config) error {
	f.drop = cfg != nil && cfg.DropInvalidSchedules
	return nil
}

func (f *scheduleCheckFilter) Apply(_ context.Context, deps Deps, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()

	var invalid []roster.Ref
	for _, p := range r.Profiles() {
		issues := p.Availability.Issues()
		if len(issues) == 0 {
			continue
		}
		invalid = append(invalid, roster.RefOf(p))

		if deps.Logger != nil {
			descriptions := make([]string, 0, len(issues))
			for _, issue := range issues {
				descriptions = append(descriptions, issue.String())
			}
			deps.Logger.Warn("availability schedule has issues",
				zap.String("profile_id", p.ID()),
				zap.String("profile_kind", string(p.Kind())),
				zap.Strings("issues", descriptions),
			)
		}
	}

	if !f.drop || len(invalid) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	removed := r.Exclude(invalid)
	if deps.Logger != nil {
		deps.Logger.Info("excluding profiles with invalid schedules",
			zap.Strings("excluded_profiles", removed),
			zap.Int("profiles_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *scheduleCheckFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"drop_invalid": strconv.FormatBool(f.drop)},
	}
}
