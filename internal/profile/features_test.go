package profile

import (
	"slices"
	"testing"
)

func newTestLearner(t *testing.T, params LearnerParams) *Learner {
	t.Helper()

	if params.ID == "" {
		params.ID = "learner-1"
	}
	if params.AvailabilitySchedule == nil {
		params.AvailabilitySchedule = Schedule{}
	}
	if params.TutorRatings == nil {
		params.TutorRatings = map[string]float64{}
	}

	learner, err := NewLearner(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return learner
}

func TestExtractFeaturesScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter []string
		expect []float64
	}{
		{
			name:   "without filter",
			expect: []float64{0.5, 0, 0, 0, 0, 0, 0, 0, 0, 8},
		},
		{
			name:   "with filter naming an unknown competency",
			filter: []string{"math", "science"},
			expect: []float64{0.5, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			learner := newTestLearner(t, LearnerParams{
				LearningStyle: Style{Visual: 1},
				Competencies:  NewCompetencies(C("math", 0.8)),
			})
			if tt.filter != nil {
				learner.SetCompetencyFilter(tt.filter)
			}

			got := learner.ExtractFeatures()
			if !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestExtractFeaturesWeights(t *testing.T) {
	tutor, err := NewTutor(TutorParams{
		ID:                   "tutor-1",
		AvailabilitySchedule: Schedule{},
		TutorType:            Professional,
		TeachingStyle:        Style{Visual: 2, Auditory: 4, ReadWrite: 6, Kinesthetic: 8},
		Personality:          Personality{Openness: 2, Conscientiousness: 4, Extraversion: 6, Agreeableness: 8, Neuroticism: 10},
		Competencies:         NewCompetencies(C("math", 0.5), C("english", 0.25)),
		StudentRatings:       map[string]float64{"learner-1": 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []float64{1, 2, 3, 4, 1, 2, 3, 4, 5, 5, 2.5}
	if got := tutor.ExtractFeatures(); !slices.Equal(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestExtractFeaturesLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		competencies *Competencies
		filter       []string
		expect       int
	}{
		{name: "no competencies", expect: 9},
		{name: "no competencies with filter", filter: []string{"math"}, expect: 9},
		{name: "empty competencies", competencies: NewCompetencies(), expect: 9},
		{name: "all competencies", competencies: NewCompetencies(C("a", 1), C("b", 2), C("c", 3)), expect: 12},
		{name: "filter shorter", competencies: NewCompetencies(C("a", 1), C("b", 2)), filter: []string{"b"}, expect: 10},
		{name: "filter longer", competencies: NewCompetencies(C("a", 1)), filter: []string{"a", "x", "y"}, expect: 12},
		{name: "empty filter", competencies: NewCompetencies(C("a", 1)), filter: []string{}, expect: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			learner := newTestLearner(t, LearnerParams{
				Competencies:     tt.competencies,
				CompetencyFilter: tt.filter,
			})

			got := learner.ExtractFeatures()
			if len(got) != tt.expect {
				t.Fatalf("expected length %d, got %d (%v)", tt.expect, len(got), got)
			}
			if want := StyleDims + PersonalityDims + len(learner.FilteredCompetencies()); len(got) != want {
				t.Fatalf("expected length %d to match filtered competencies, got %d", want, len(got))
			}
			if FeatureLen(&learner.Profile) != len(got) {
				t.Fatalf("FeatureLen disagrees: %d vs %d", FeatureLen(&learner.Profile), len(got))
			}
		})
	}
}

func TestExtractFeaturesIsIdempotent(t *testing.T) {
	learner := newTestLearner(t, LearnerParams{
		LearningStyle: Style{Visual: 0.3, Kinesthetic: 0.7},
		Personality:   Personality{Openness: 4.5, Neuroticism: 1.5},
		Competencies:  NewCompetencies(C("math", 0.8), C("science", 0.4)),
	})

	first := learner.ExtractFeatures()
	second := learner.ExtractFeatures()
	if !slices.Equal(first, second) {
		t.Fatalf("expected identical vectors, got %v and %v", first, second)
	}

	first[0] = 100
	if third := learner.ExtractFeatures(); third[0] == 100 {
		t.Fatalf("expected a fresh vector on every call")
	}
	if score, _ := learner.Competencies.Get("math"); score != 0.8 {
		t.Fatalf("extraction must not touch competencies, got %v", score)
	}
}

func TestStyleAndPersonalityFromMap(t *testing.T) {
	style := StyleFromMap(map[string]float64{"visual": 1, "read_write": 3, "smell": 9})
	if !slices.Equal(style.Values(), []float64{1, 0, 3, 0}) {
		t.Fatalf("unexpected style values: %v", style.Values())
	}

	personality := PersonalityFromMap(map[string]float64{"agreeableness": 2, "neuroticism": 5})
	if !slices.Equal(personality.Values(), []float64{0, 0, 0, 2, 5}) {
		t.Fatalf("unexpected personality values: %v", personality.Values())
	}

	if !slices.Equal(StyleFromMap(nil).Values(), []float64{0, 0, 0, 0}) {
		t.Fatalf("expected zero style from nil map")
	}
}
