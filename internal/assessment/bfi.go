package assessment

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spigell/tutor-features/internal/profile"
)

// Trait is one of the Big Five personality dimensions.
type Trait string

const (
	Openness          Trait = "openness"
	Conscientiousness Trait = "conscientiousness"
	Extraversion      Trait = "extraversion"
	Agreeableness     Trait = "agreeableness"
	Neuroticism       Trait = "neuroticism"
)

// maxLikert is the top of the 1..5 answer scale; reversed items score maxLikert+1-x.
const maxLikert = 5

var traitAliases = map[string]Trait{
	"o":                 Openness,
	"openness":          Openness,
	"c":                 Conscientiousness,
	"conscientiousness": Conscientiousness,
	"e":                 Extraversion,
	"extraversion":      Extraversion,
	"extroversion":      Extraversion,
	"a":                 Agreeableness,
	"agreeableness":     Agreeableness,
	"n":                 Neuroticism,
	"neuroticism":       Neuroticism,
}

// ParseTrait accepts trait names, the questionnaire display names and
// single-letter codes, case-insensitively.
func ParseTrait(s string) (Trait, error) {
	if t, ok := traitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown bfi trait %q", s)
}

// BFIItem maps a questionnaire item to the trait it measures.
type BFIItem struct {
	Trait    Trait `json:"trait"`
	Reversed bool  `json:"reversed"`
}

// BFIAnswer is the choice text selected for an item, e.g. "4 - Agree a little".
type BFIAnswer struct {
	Item   BFIItem `json:"item"`
	Choice string  `json:"choice"`
}

// Score reads the leading digit of the choice. ok is false when the choice
// does not start with a digit in the 1..5 range.
func (a BFIAnswer) Score() (score float64, ok bool) {
	choice := strings.TrimSpace(a.Choice)
	if choice == "" {
		return 0, false
	}

	r := rune(choice[0])
	if !unicode.IsDigit(r) {
		return 0, false
	}

	value := int(r - '0')
	if value < 1 || value > maxLikert {
		return 0, false
	}
	if a.Item.Reversed {
		value = maxLikert + 1 - value
	}
	return float64(value), true
}

// ScoreBFI averages the answers per trait. Traits without usable answers score zero.
func ScoreBFI(answers []BFIAnswer) profile.Personality {
	sums := make(map[Trait]float64, 5)
	counts := make(map[Trait]int, 5)

	for _, answer := range answers {
		score, ok := answer.Score()
		if !ok {
			continue
		}
		sums[answer.Item.Trait] += score
		counts[answer.Item.Trait]++
	}

	mean := func(t Trait) float64 {
		if counts[t] == 0 {
			return 0
		}
		return sums[t] / float64(counts[t])
	}

	return profile.Personality{
		Openness:          mean(Openness),
		Conscientiousness: mean(Conscientiousness),
		Extraversion:      mean(Extraversion),
		Agreeableness:     mean(Agreeableness),
		Neuroticism:       mean(Neuroticism),
	}
}

func (t *Trait) UnmarshalText(text []byte) error {
	parsed, err := ParseTrait(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
