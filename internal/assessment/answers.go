package assessment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/tutor-features/internal/profile"
)

// Answers is a questionnaire submission covering both instruments.
type Answers struct {
	BFI  []BFIAnswer  `json:"bfi"`
	VARK []VARKAnswer `json:"vark"`
}

// Result holds the profile inputs derived from Answers.
type Result struct {
	Style       profile.Style       `json:"style"`
	Personality profile.Personality `json:"personality"`
}

func (a *Answers) Score() Result {
	return Result{
		Style:       ScoreVARK(a.VARK),
		Personality: ScoreBFI(a.BFI),
	}
}

// LoadAnswers reads a JSON answers file.
func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var answers Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers %q: %w", path, err)
	}
	return &answers, nil
}
