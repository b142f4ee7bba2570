package profile

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Kind distinguishes learner profiles from tutor profiles.
type Kind string

const (
	KindLearner Kind = "learner"
	KindTutor   Kind = "tutor"
)

// TutorType classifies a tutor. It is stored with the profile and does not
// take part in feature extraction.
type TutorType string

const (
	Professional     TutorType = "professional"
	Paraprofessional TutorType = "paraprofessional"
	Nonprofessional  TutorType = "nonprofessional"
)

// TutorTypes lists the recognized tutor types.
var TutorTypes = []TutorType{Professional, Paraprofessional, Nonprofessional}

// ParseTutorType validates a tutor type name.
func ParseTutorType(s string) (TutorType, error) {
	t := TutorType(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(TutorTypes, t) {
		return "", fmt.Errorf("unknown tutor type %q", s)
	}
	return t, nil
}

// Profile is the body shared by learners and tutors.
type Profile struct {
	id           string
	Availability Schedule
	// Competencies is nil when the profile carries no competency data.
	Competencies *Competencies
	// CompetencyFilter is nil when no filter is set.
	CompetencyFilter []string
	Style            Style
	Personality      Personality
	Ratings          map[string]float64

	kind Kind
}

func (p *Profile) ID() string { return p.id }

func (p *Profile) Kind() Kind { return p.kind }

// SetCompetencyFilter replaces the competency filter. Names are not checked
// against the competency map; nil clears the filter.
func (p *Profile) SetCompetencyFilter(names []string) {
	p.CompetencyFilter = slices.Clone(names)
}

// FilteredCompetencies returns competency scores restricted to and ordered by
// the filter, substituting zero for unknown names. Without a filter all scores
// are returned in insertion order.
func (p *Profile) FilteredCompetencies() []float64 {
	if p.Competencies == nil || p.Competencies.Len() == 0 {
		return []float64{}
	}

	if p.CompetencyFilter == nil {
		values := make([]float64, 0, p.Competencies.Len())
		for pair := p.Competencies.Oldest(); pair != nil; pair = pair.Next() {
			values = append(values, pair.Value)
		}
		return values
	}

	values := make([]float64, 0, len(p.CompetencyFilter))
	for _, name := range p.CompetencyFilter {
		score, _ := p.Competencies.Get(name)
		values = append(values, score)
	}
	return values
}

// Learner is a student profile. Its style is a learning style and its
// ratings are keyed by tutor id.
type Learner struct {
	Profile
}

// LearnerParams carries the fields needed to construct a Learner.
type LearnerParams struct {
	ID                   string
	AvailabilitySchedule Schedule
	Competencies         *Competencies
	CompetencyFilter     []string
	LearningStyle        Style
	Personality          Personality
	TutorRatings         map[string]float64
}

// NewLearner validates params and returns a learner that owns copies of every
// map and slice it was given.
func NewLearner(params LearnerParams) (*Learner, error) {
	body, err := newProfile(KindLearner, params.ID, params.AvailabilitySchedule, params.TutorRatings, "tutor_ratings")
	if err != nil {
		return nil, err
	}

	body.Competencies = cloneCompetencies(params.Competencies)
	body.CompetencyFilter = slices.Clone(params.CompetencyFilter)
	body.Style = params.LearningStyle
	body.Personality = params.Personality

	return &Learner{Profile: body}, nil
}

func (l *Learner) LearningStyle() Style { return l.Style }

func (l *Learner) TutorRatings() map[string]float64 { return l.Ratings }

// Tutor is a tutor profile. Its style is a teaching style and its ratings are
// keyed by learner id.
type Tutor struct {
	Profile
	Type TutorType
}

// TutorParams carries the fields needed to construct a Tutor.
type TutorParams struct {
	ID                   string
	AvailabilitySchedule Schedule
	Competencies         *Competencies
	CompetencyFilter     []string
	TutorType            TutorType
	TeachingStyle        Style
	Personality          Personality
	StudentRatings       map[string]float64
}

// NewTutor validates params and returns a tutor that owns copies of every map
// and slice it was given.
func NewTutor(params TutorParams) (*Tutor, error) {
	body, err := newProfile(KindTutor, params.ID, params.AvailabilitySchedule, params.StudentRatings, "student_ratings")
	if err != nil {
		return nil, err
	}

	if params.TutorType == "" {
		return nil, missing(KindTutor, body.id, "tutor_type")
	}
	tutorType, err := ParseTutorType(string(params.TutorType))
	if err != nil {
		return nil, &InvalidProfileError{Kind: KindTutor, ID: body.id, Field: "tutor_type", Reason: err.Error()}
	}

	body.Competencies = cloneCompetencies(params.Competencies)
	body.CompetencyFilter = slices.Clone(params.CompetencyFilter)
	body.Style = params.TeachingStyle
	body.Personality = params.Personality

	return &Tutor{Profile: body, Type: tutorType}, nil
}

func (t *Tutor) TeachingStyle() Style { return t.Style }

func (t *Tutor) StudentRatings() map[string]float64 { return t.Ratings }

func newProfile(kind Kind, id string, availability Schedule, ratings map[string]float64, ratingsField string) (Profile, error) {
	if id == "" {
		return Profile{}, missing(kind, "", "id")
	}
	if availability == nil {
		return Profile{}, missing(kind, id, "availability_schedule")
	}
	if ratings == nil {
		return Profile{}, missing(kind, id, ratingsField)
	}

	return Profile{
		id:           id,
		kind:         kind,
		Availability: availability.Clone(),
		Ratings:      maps.Clone(ratings),
	}, nil
}
