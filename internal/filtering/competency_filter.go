package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/tutor-features/internal/roster"
)

type competencyFilter struct {
	toggle

	names []string
	align bool
}

// NewCompetencyFilter creates a step that sets one competency filter on every
// profile so that all vectors share the same competency layout.
func NewCompetencyFilter() Filter {
	return &competencyFilter{}
}

func (f *competencyFilter) Name() string { return "competency_filter" }

func (f *competencyFilter) Validate(cfg *Config) error {
	f.names, f.align = nil, false
	if cfg == nil {
		return nil
	}
	for _, name := range cfg.Competencies {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("competency names must not be empty")
		}
	}
	f.names = append(f.names, cfg.Competencies...)
	f.align = cfg.AlignCompetencies
	return nil
}

func (f *competencyFilter) Apply(_ context.Context, deps Deps, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()
	step := Step{Initial: initial, Dropped: 0, Left: r.Len()}

	names := f.names
	if len(names) == 0 && f.align {
		names = r.CompetencyNames()
	}

	if len(names) > 0 {
		r.SetCompetencyFilter(names)
		if deps.Logger != nil {
			deps.Logger.Info("applying competency filter to all profiles",
				zap.Strings("competencies", names),
				zap.Bool("aligned", len(f.names) == 0),
			)
		}
	}

	if dims := r.Extract().Dimensions(); len(dims) > 1 && deps.Logger != nil {
		deps.Logger.Warn("feature vectors differ in length",
			zap.Ints("dimensions", dims),
			zap.String("hint", "set filters.competencies or filters.align-competencies; profiles without competencies always yield 9 features"),
		)
	}

	return r, step, nil
}

func (f *competencyFilter) Status() Status {
	details := map[string]string{"align": strconv.FormatBool(f.align)}
	if len(f.names) > 0 {
		details["competencies"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
