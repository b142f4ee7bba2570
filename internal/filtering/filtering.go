package filtering

import (
	"context"
	"fmt"

	"github.com/spigell/tutor-features/internal/profile"
	"github.com/spigell/tutor-features/internal/roster"
	"go.uber.org/zap"
)

// Filter represents a single step applied to a roster before extraction.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *roster.Roster) (*roster.Roster, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	ExcludeFile          string
	TutorTypes           []profile.TutorType
	DropInvalidSchedules bool
	Competencies         []string
	AlignCompetencies    bool
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Default returns the standard steps in the order they should run.
func Default() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewTutorTypes(),
		NewScheduleCheck(),
		NewCompetencyFilter(),
	}
}

// toggle holds the enabled state of a step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) error {
	found := false
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("unknown filter %q", name)
	}
	return nil
}

// Run validates every enabled step and then executes them sequentially.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *roster.Roster) (*roster.Roster, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			if deps.Logger != nil {
				fields := []zap.Field{zap.String("name", step.Name())}
				if reporter, ok := step.(statusProvider); ok && reporter.Status().Reason != "" {
					fields = append(fields, zap.String("reason", reporter.Status().Reason))
				}
				deps.Logger.Info("filter disabled", fields...)
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		r = next
	}

	return r, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
