package profile

import (
	"errors"
	"slices"
	"testing"
)

func TestFilteredCompetencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		competencies *Competencies
		filter       []string
		expect       []float64
	}{
		{
			name:   "absent competencies",
			expect: []float64{},
		},
		{
			name:   "absent competencies ignore the filter",
			filter: []string{"math"},
			expect: []float64{},
		},
		{
			name:         "insertion order without filter",
			competencies: NewCompetencies(C("science", 0.2), C("math", 0.9), C("english", 0.5)),
			expect:       []float64{0.2, 0.9, 0.5},
		},
		{
			name:         "filter order wins",
			competencies: NewCompetencies(C("science", 0.2), C("math", 0.9), C("english", 0.5)),
			filter:       []string{"english", "science"},
			expect:       []float64{0.5, 0.2},
		},
		{
			name:         "missing filter key reads as zero",
			competencies: NewCompetencies(C("math", 0.7)),
			filter:       []string{"math", "history"},
			expect:       []float64{0.7, 0},
		},
		{
			name:         "duplicate filter names repeat",
			competencies: NewCompetencies(C("math", 0.7)),
			filter:       []string{"math", "math"},
			expect:       []float64{0.7, 0.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			learner := newTestLearner(t, LearnerParams{Competencies: tt.competencies})
			learner.SetCompetencyFilter(tt.filter)

			got := learner.FilteredCompetencies()
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestSetCompetencyFilter(t *testing.T) {
	learner := newTestLearner(t, LearnerParams{
		Competencies: NewCompetencies(C("math", 0.8), C("science", 0.4)),
	})

	names := []string{"science"}
	learner.SetCompetencyFilter(names)
	names[0] = "math"

	if got := learner.FilteredCompetencies(); !slices.Equal(got, []float64{0.4}) {
		t.Fatalf("expected filter to be copied, got %v", got)
	}

	learner.SetCompetencyFilter([]string{"art", "music"})
	if got := learner.FilteredCompetencies(); !slices.Equal(got, []float64{0, 0}) {
		t.Fatalf("expected unknown names to read as zero, got %v", got)
	}

	learner.SetCompetencyFilter(nil)
	if learner.CompetencyFilter != nil {
		t.Fatalf("expected nil to clear the filter")
	}
	if got := learner.FilteredCompetencies(); !slices.Equal(got, []float64{0.8, 0.4}) {
		t.Fatalf("expected all competencies after clearing, got %v", got)
	}
}

func TestNewLearnerValidation(t *testing.T) {
	t.Parallel()

	valid := func() LearnerParams {
		return LearnerParams{
			ID:                   "learner-1",
			AvailabilitySchedule: Schedule{"monday": {{Start: Clock(8, 0), End: Clock(10, 0)}}},
			TutorRatings:         map[string]float64{"tutor-1": 4.5},
		}
	}

	tests := []struct {
		name   string
		mutate func(*LearnerParams)
		field  string
	}{
		{name: "empty id", mutate: func(p *LearnerParams) { p.ID = "" }, field: "id"},
		{name: "missing schedule", mutate: func(p *LearnerParams) { p.AvailabilitySchedule = nil }, field: "availability_schedule"},
		{name: "missing ratings", mutate: func(p *LearnerParams) { p.TutorRatings = nil }, field: "tutor_ratings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid()
			tt.mutate(&params)

			_, err := NewLearner(params)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}

			var invalid *InvalidProfileError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidProfileError, got %T", err)
			}
			if invalid.Field != tt.field || invalid.Kind != KindLearner {
				t.Fatalf("unexpected error details: %+v", invalid)
			}
		})
	}

	learner, err := NewLearner(valid())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if learner.ID() != "learner-1" || learner.Kind() != KindLearner {
		t.Fatalf("unexpected identity: %s/%s", learner.ID(), learner.Kind())
	}
	if learner.Competencies != nil || learner.CompetencyFilter != nil {
		t.Fatalf("expected optional fields to stay absent")
	}
	if learner.LearningStyle() != (Style{}) || learner.Personality != (Personality{}) {
		t.Fatalf("expected zero style and personality by default")
	}
}

func TestNewTutorValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tutorType TutorType
		wantErr   bool
		expect    TutorType
	}{
		{name: "professional", tutorType: Professional, expect: Professional},
		{name: "case insensitive", tutorType: "NonProfessional", expect: Nonprofessional},
		{name: "missing", tutorType: "", wantErr: true},
		{name: "unknown", tutorType: "volunteer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tutor, err := NewTutor(TutorParams{
				ID:                   "tutor-1",
				AvailabilitySchedule: Schedule{},
				TutorType:            tt.tutorType,
				StudentRatings:       map[string]float64{},
			})

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Fatalf("expected ErrInvalidProfile, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tutor.Type != tt.expect {
				t.Fatalf("expected type %s, got %s", tt.expect, tutor.Type)
			}
		})
	}

	_, err := NewTutor(TutorParams{ID: "tutor-2", AvailabilitySchedule: Schedule{}, TutorType: Professional})
	var invalid *InvalidProfileError
	if !errors.As(err, &invalid) || invalid.Field != "student_ratings" {
		t.Fatalf("expected missing student_ratings, got %v", err)
	}
}

func TestProfilesOwnTheirData(t *testing.T) {
	schedule := Schedule{"monday": {{Start: Clock(9, 0), End: Clock(11, 0)}}}
	ratings := map[string]float64{"tutor-1": 3}
	competencies := NewCompetencies(C("math", 0.5))
	filter := []string{"math"}

	first, err := NewLearner(LearnerParams{
		ID:                   "a",
		AvailabilitySchedule: schedule,
		TutorRatings:         ratings,
		Competencies:         competencies,
		CompetencyFilter:     filter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewLearner(LearnerParams{
		ID:                   "b",
		AvailabilitySchedule: schedule,
		TutorRatings:         ratings,
		Competencies:         competencies,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule["monday"][0].End = Clock(23, 0)
	ratings["tutor-1"] = 1
	competencies.Set("math", 0.1)
	filter[0] = "science"

	first.Ratings["tutor-2"] = 5
	first.Style.Visual = 1

	if second.Availability["monday"][0].End != Clock(11, 0) {
		t.Fatalf("schedule leaked between instances")
	}
	if second.TutorRatings()["tutor-1"] != 3 || len(second.Ratings) != 1 {
		t.Fatalf("ratings leaked between instances: %v", second.Ratings)
	}
	if score, _ := second.Competencies.Get("math"); score != 0.5 {
		t.Fatalf("competencies leaked: %v", score)
	}
	if first.CompetencyFilter[0] != "math" {
		t.Fatalf("filter leaked: %v", first.CompetencyFilter)
	}
	if second.Style.Visual != 0 {
		t.Fatalf("style leaked between instances")
	}
}

func TestInvalidProfileErrorMessage(t *testing.T) {
	err := &InvalidProfileError{Kind: KindTutor, ID: "t1", Field: "tutor_type", Reason: "is required"}
	if got := err.Error(); got != `invalid tutor profile "t1": field tutor_type is required` {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestCompetencyNames(t *testing.T) {
	names := CompetencyNames(NewCompetencies(C("b", 1), C("a", 2), C("b", 3)))
	if !slices.Equal(names, []string{"b", "a"}) {
		t.Fatalf("unexpected names: %v", names)
	}
	if CompetencyNames(nil) != nil {
		t.Fatalf("expected nil names for absent competencies")
	}
}

func TestIDsAreOpaque(t *testing.T) {
	for _, id := range []string{"  ", "Jane Doe", "ünïcode"} {
		l, err := NewLearner(LearnerParams{ID: id, AvailabilitySchedule: Schedule{}, TutorRatings: map[string]float64{}})
		if err != nil {
			t.Fatalf("id %q: unexpected error: %v", id, err)
		}
		if l.ID() != id {
			t.Fatalf("expected id %q to be kept as given, got %q", id, l.ID())
		}
	}
}
