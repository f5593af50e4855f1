package recommend

import "math"

// Jaccard returns |intersection| / |union| of two string sets. Both empty
// yields 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for s := range setA {
		union[s] = struct{}{}
	}
	inter := 0
	for _, s := range b {
		if _, ok := union[s]; !ok {
			union[s] = struct{}{}
			continue
		}
		if _, ok := setA[s]; ok {
			// count each shared element once
			delete(setA, s)
			inter++
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union))
}

// Cosine returns the cosine similarity of two sparse vectors.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// DifficultyMatch scores the distance between two levels on the 4-point
// ordinal scale: equal levels give 1.0, three steps apart give 0.0.
func DifficultyMatch(contentLevel, userLevel int) float64 {
	d := contentLevel - userLevel
	if d < 0 {
		d = -d
	}
	score := 1.0 - float64(d)/3.0
	if score < 0 {
		return 0
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// styleAlignment is a fixed lookup of learning style against content type.
// Unknown pairs score 0.5 (neutral).
var styleAlignment = map[string]map[string]float64{
	"visual": {
		"video":       1.0,
		"interactive": 0.8,
		"course":      0.6,
		"article":     0.3,
		"podcast":     0.2,
	},
	"auditory": {
		"podcast":     1.0,
		"video":       0.7,
		"course":      0.5,
		"interactive": 0.4,
		"article":     0.2,
	},
	"reading": {
		"article":     1.0,
		"course":      0.7,
		"interactive": 0.4,
		"video":       0.3,
		"podcast":     0.2,
	},
	"kinesthetic": {
		"interactive": 1.0,
		"course":      0.6,
		"video":       0.4,
		"article":     0.3,
		"podcast":     0.2,
	},
}

// StyleAlignment returns the fixed alignment score for a learning style and a
// content type, 0.5 when either is unknown.
func StyleAlignment(style, contentType string) float64 {
	table, ok := styleAlignment[style]
	if !ok {
		return 0.5
	}
	score, ok := table[contentType]
	if !ok {
		return 0.5
	}
	return score
}
