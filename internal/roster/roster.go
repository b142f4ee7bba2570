package roster

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/tutor-features/internal/profile"
)

// Roster is a population of learner and tutor profiles.
type Roster struct {
	Learners []*profile.Learner
	Tutors   []*profile.Tutor
}

func (r *Roster) Len() int {
	return len(r.Learners) + len(r.Tutors)
}

// IDs returns learner ids followed by tutor ids.
func (r *Roster) IDs() []string {
	ids := make([]string, 0, r.Len())
	for _, p := range r.Profiles() {
		ids = append(ids, p.ID())
	}
	return ids
}

// Profiles returns the shared profile bodies, learners first.
func (r *Roster) Profiles() []*profile.Profile {
	profiles := make([]*profile.Profile, 0, r.Len())
	for _, l := range r.Learners {
		profiles = append(profiles, &l.Profile)
	}
	for _, t := range r.Tutors {
		profiles = append(profiles, &t.Profile)
	}
	return profiles
}

func (r *Roster) FindLearner(id string) *profile.Learner {
	for _, l := range r.Learners {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

func (r *Roster) FindTutor(id string) *profile.Tutor {
	for _, t := range r.Tutors {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// Find looks a profile up by id regardless of kind.
func (r *Roster) Find(id string) *profile.Profile {
	if l := r.FindLearner(id); l != nil {
		return &l.Profile
	}
	if t := r.FindTutor(id); t != nil {
		return &t.Profile
	}
	return nil
}

// Ref names one profile. An empty Kind matches a learner and a tutor
// sharing the id.
type Ref struct {
	Kind profile.Kind
	ID   string
}

// RefOf returns the reference of p.
func RefOf(p *profile.Profile) Ref {
	return Ref{Kind: p.Kind(), ID: p.ID()}
}

func (ref Ref) matches(p *profile.Profile) bool {
	return ref.ID == p.ID() && (ref.Kind == "" || ref.Kind == p.Kind())
}

func referenced(refs []Ref, p *profile.Profile) bool {
	return slices.ContainsFunc(refs, func(ref Ref) bool { return ref.matches(p) })
}

// Exclude removes the referenced profiles and returns the removed ids.
// Order of the remaining profiles is preserved.
func (r *Roster) Exclude(refs []Ref) []string {
	if len(refs) == 0 {
		return nil
	}

	var excluded []string
	r.Learners = slices.DeleteFunc(r.Learners, func(l *profile.Learner) bool {
		if referenced(refs, &l.Profile) {
			excluded = append(excluded, l.ID())
			return true
		}
		return false
	})
	r.Tutors = slices.DeleteFunc(r.Tutors, func(t *profile.Tutor) bool {
		if referenced(refs, &t.Profile) {
			excluded = append(excluded, t.ID())
			return true
		}
		return false
	})
	return excluded
}

// KeepTutorTypes drops tutors whose type is not listed and returns their ids.
// Learners are untouched.
func (r *Roster) KeepTutorTypes(types []profile.TutorType) []string {
	var dropped []string
	r.Tutors = slices.DeleteFunc(r.Tutors, func(t *profile.Tutor) bool {
		if !slices.Contains(types, t.Type) {
			dropped = append(dropped, t.ID())
			return true
		}
		return false
	})
	return dropped
}

// CompetencyNames returns every competency name seen across the roster, in
// first-seen order.
func (r *Roster) CompetencyNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range r.Profiles() {
		for _, name := range profile.CompetencyNames(p.Competencies) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// SetCompetencyFilter applies the same filter to every profile so their
// vectors share one layout.
func (r *Roster) SetCompetencyFilter(names []string) {
	for _, p := range r.Profiles() {
		p.SetCompetencyFilter(names)
	}
}

// ReportByKind groups a short description of each profile by learner or tutor type.
func (r *Roster) ReportByKind() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, l := range r.Learners {
		key := string(profile.KindLearner)
		report[key] = append(report[key], describe(&l.Profile))
	}
	for _, t := range r.Tutors {
		key := fmt.Sprintf("%s (%s)", profile.KindTutor, t.Type)
		report[key] = append(report[key], describe(&t.Profile))
	}
	return report
}

func describe(p *profile.Profile) map[string]string {
	entry := map[string]string{
		"id":           p.ID(),
		"competencies": strings.Join(profile.CompetencyNames(p.Competencies), ","),
		"features":     strconv.Itoa(profile.FeatureLen(p)),
		"ratings":      strconv.Itoa(len(p.Ratings)),
	}
	if p.CompetencyFilter != nil {
		entry["competency_filter"] = strings.Join(p.CompetencyFilter, ",")
	}
	if issues := p.Availability.Issues(); len(issues) > 0 {
		entry["schedule_issues"] = strconv.Itoa(len(issues))
	}
	return entry
}
