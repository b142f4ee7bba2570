package assessment

import (
	"fmt"
	"strings"

	"github.com/spigell/tutor-features/internal/profile"
)

// Modality is one of the VARK learning modalities.
type Modality string

const (
	Visual      Modality = "visual"
	Auditory    Modality = "auditory"
	ReadWrite   Modality = "read_write"
	Kinesthetic Modality = "kinesthetic"
)

var modalityAliases = map[string]Modality{
	"v":           Visual,
	"visual":      Visual,
	"a":           Auditory,
	"auditory":    Auditory,
	"r":           ReadWrite,
	"read_write":  ReadWrite,
	"read/write":  ReadWrite,
	"read-write":  ReadWrite,
	"k":           Kinesthetic,
	"kinesthetic": Kinesthetic,
}

func ParseModality(s string) (Modality, error) {
	if m, ok := modalityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown vark modality %q", s)
}

// VARKAnswer is a selected choice tagged with the modality it indicates.
type VARKAnswer struct {
	Modality Modality `json:"modality"`
}

// ScoreVARK returns the share of recognized answers that fall in each modality.
func ScoreVARK(answers []VARKAnswer) profile.Style {
	counts := make(map[Modality]int, 4)
	total := 0
	for _, answer := range answers {
		switch answer.Modality {
		case Visual, Auditory, ReadWrite, Kinesthetic:
			counts[answer.Modality]++
			total++
		}
	}

	if total == 0 {
		return profile.Style{}
	}

	share := func(m Modality) float64 {
		return float64(counts[m]) / float64(total)
	}

	return profile.Style{
		Visual:      share(Visual),
		Auditory:    share(Auditory),
		ReadWrite:   share(ReadWrite),
		Kinesthetic: share(Kinesthetic),
	}
}

func (m *Modality) UnmarshalText(text []byte) error {
	parsed, err := ParseModality(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
