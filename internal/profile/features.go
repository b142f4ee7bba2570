package profile

const (
	StyleDims       = 4
	PersonalityDims = 5

	styleWeight       = 0.5
	personalityWeight = 0.5
	competencyWeight  = 10
)

// Style holds VARK weights. It is used as the learning style of a learner
// and as the teaching style of a tutor.
type Style struct {
	Visual      float64 `json:"visual"`
	Auditory    float64 `json:"auditory"`
	ReadWrite   float64 `json:"read_write"`
	Kinesthetic float64 `json:"kinesthetic"`
}

// StyleFromMap reads the recognized VARK keys. Missing keys read as zero and
// unknown keys are ignored.
func StyleFromMap(m map[string]float64) Style {
	return Style{
		Visual:      m["visual"],
		Auditory:    m["auditory"],
		ReadWrite:   m["read_write"],
		Kinesthetic: m["kinesthetic"],
	}
}

// Values returns the weights in visual, auditory, read_write, kinesthetic order.
func (s Style) Values() []float64 {
	return []float64{s.Visual, s.Auditory, s.ReadWrite, s.Kinesthetic}
}

// Personality holds Big Five (BFI-10) trait scores.
type Personality struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// PersonalityFromMap reads the recognized trait keys. Missing keys read as zero
// and unknown keys are ignored.
func PersonalityFromMap(m map[string]float64) Personality {
	return Personality{
		Openness:          m["openness"],
		Conscientiousness: m["conscientiousness"],
		Extraversion:      m["extraversion"],
		Agreeableness:     m["agreeableness"],
		Neuroticism:       m["neuroticism"],
	}
}

// Values returns the scores in openness, conscientiousness, extraversion,
// agreeableness, neuroticism order.
func (p Personality) Values() []float64 {
	return []float64{p.Openness, p.Conscientiousness, p.Extraversion, p.Agreeableness, p.Neuroticism}
}

// Extractor is anything that can be projected into a feature vector.
type Extractor interface {
	ID() string
	ExtractFeatures() []float64
}

// ExtractFeatures concatenates the weighted style, personality and filtered
// competency vectors. It never mutates the profile.
func (p *Profile) ExtractFeatures() []float64 {
	competencies := p.FilteredCompetencies()

	features := make([]float64, 0, StyleDims+PersonalityDims+len(competencies))
	features = appendScaled(features, p.Style.Values(), styleWeight)
	features = appendScaled(features, p.Personality.Values(), personalityWeight)
	features = appendScaled(features, competencies, competencyWeight)

	return features
}

// FeatureLen reports the length ExtractFeatures would return for p.
func FeatureLen(p *Profile) int {
	return StyleDims + PersonalityDims + len(p.FilteredCompetencies())
}

func appendScaled(dst, values []float64, weight float64) []float64 {
	for _, v := range values {
		dst = append(dst, v*weight)
	}
	return dst
}
