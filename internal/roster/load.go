package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/tutor-features/internal/profile"
)

const maxParallelLoads = 4

type document struct {
	Learners []learnerDocument `json:"learners"`
	Tutors   []tutorDocument   `json:"tutors"`
}

type learnerDocument struct {
	ID                   string                `json:"id"`
	AvailabilitySchedule profile.Schedule      `json:"availability_schedule"`
	Competencies         *profile.Competencies `json:"competencies"`
	CompetencyFilter     []string              `json:"competency_filter"`
	LearningStyle        profile.Style         `json:"learning_style"`
	Personality          profile.Personality   `json:"personality"`
	TutorRatings         map[string]float64    `json:"tutor_ratings"`
}

type tutorDocument struct {
	ID                   string                `json:"id"`
	AvailabilitySchedule profile.Schedule      `json:"availability_schedule"`
	Competencies         *profile.Competencies `json:"competencies"`
	CompetencyFilter     []string              `json:"competency_filter"`
	TutorType            profile.TutorType     `json:"tutor_type"`
	TeachingStyle        profile.Style         `json:"teaching_style"`
	Personality          profile.Personality   `json:"personality"`
	StudentRatings       map[string]float64    `json:"student_ratings"`
}

// Load reads one roster file and constructs every profile in it. Ids must
// be unique per profile kind.
func Load(path string) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var doc document
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode roster %q: %w", path, err)
	}

	r := &Roster{
		Learners: make([]*profile.Learner, 0, len(doc.Learners)),
		Tutors:   make([]*profile.Tutor, 0, len(doc.Tutors)),
	}

	for idx, d := range doc.Learners {
		learner, err := profile.NewLearner(profile.LearnerParams{
			ID:                   d.ID,
			AvailabilitySchedule: d.AvailabilitySchedule,
			Competencies:         d.Competencies,
			CompetencyFilter:     d.CompetencyFilter,
			LearningStyle:        d.LearningStyle,
			Personality:          d.Personality,
			TutorRatings:         d.TutorRatings,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: learners[%d]: %w", path, idx, err)
		}
		if r.FindLearner(learner.ID()) != nil {
			return nil, fmt.Errorf("%s: learners[%d]: duplicate learner id %q", path, idx, learner.ID())
		}
		r.Learners = append(r.Learners, learner)
	}

	for idx, d := range doc.Tutors {
		tutor, err := profile.NewTutor(profile.TutorParams{
			ID:                   d.ID,
			AvailabilitySchedule: d.AvailabilitySchedule,
			Competencies:         d.Competencies,
			CompetencyFilter:     d.CompetencyFilter,
			TutorType:            d.TutorType,
			TeachingStyle:        d.TeachingStyle,
			Personality:          d.Personality,
			StudentRatings:       d.StudentRatings,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: tutors[%d]: %w", path, idx, err)
		}
		if r.FindTutor(tutor.ID()) != nil {
			return nil, fmt.Errorf("%s: tutors[%d]: duplicate tutor id %q", path, idx, tutor.ID())
		}
		r.Tutors = append(r.Tutors, tutor)
	}

	return r, nil
}

// LoadAll loads several roster files concurrently and merges them in the
// order given. Ids must be unique per profile kind across all files.
func LoadAll(ctx context.Context, paths []string) (*Roster, error) {
	parts := make([]*Roster, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := Load(path)
			if err != nil {
				return err
			}
			parts[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Roster{}
	for _, part := range parts {
		if err := merged.merge(part); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (r *Roster) merge(other *Roster) error {
	for _, l := range other.Learners {
		if r.FindLearner(l.ID()) != nil {
			return fmt.Errorf("duplicate learner id %q", l.ID())
		}
		r.Learners = append(r.Learners, l)
	}
	for _, t := range other.Tutors {
		if r.FindTutor(t.ID()) != nil {
			return fmt.Errorf("duplicate tutor id %q", t.ID())
		}
		r.Tutors = append(r.Tutors, t)
	}
	return nil
}
