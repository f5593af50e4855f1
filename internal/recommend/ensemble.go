package recommend

import (
	"sort"

	"github.com/google/uuid"
)

const (
	diversityCap              = 20
	defaultMaxRecommendations = 10
)

type EnsembleConfig struct {
	DiversityLevel     int
	MaxRecommendations int // default 10
}

// Combine merges per-strategy candidate lists into one ranked, deduplicated,
// diversity-filtered list. Duplicates keep the max confidence and the mean
// relevance; provenance is the union of contributing strategy tags.
func Combine(lists [][]ScoredCandidate, cfg EnsembleConfig) []ScoredCandidate {
	type group struct {
		cand     ScoredCandidate
		relSum   float64
		relCount int
	}

	groups := make(map[uuid.UUID]*group)
	order := make([]uuid.UUID, 0)

	for _, list := range lists {
		for _, cand := range list {
			g, ok := groups[cand.CourseID]
			if !ok {
				merged := cand
				merged.Sources = []string{cand.Type}
				groups[cand.CourseID] = &group{cand: merged, relSum: cand.RelevanceScore, relCount: 1}
				order = append(order, cand.CourseID)
				continue
			}
			g.relSum += cand.RelevanceScore
			g.relCount++
			if !containsString(g.cand.Sources, cand.Type) {
				g.cand.Sources = append(g.cand.Sources, cand.Type)
			}
			if cand.ConfidenceScore > g.cand.ConfidenceScore {
				g.cand.ConfidenceScore = cand.ConfidenceScore
				g.cand.Type = cand.Type
				g.cand.Reasoning = cand.Reasoning
			}
			if g.cand.PrimaryTopic == "" {
				g.cand.PrimaryTopic = cand.PrimaryTopic
			}
		}
	}

	merged := make([]ScoredCandidate, 0, len(groups))
	for _, id := range order {
		g := groups[id]
		g.cand.RelevanceScore = g.relSum / float64(g.relCount)
		merged = append(merged, g.cand)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].RelevanceScore != merged[j].RelevanceScore {
			return merged[i].RelevanceScore > merged[j].RelevanceScore
		}
		return merged[i].CourseID.String() < merged[j].CourseID.String()
	})

	filtered := diversityFilter(merged, cfg.DiversityLevel)

	max := cfg.MaxRecommendations
	if max <= 0 {
		max = defaultMaxRecommendations
	}
	if len(filtered) > max {
		filtered = filtered[:max]
	}
	return filtered
}

// diversityFilter greedily walks the ranked list. With a positive diversity
// level an item is admitted only when its type or primary topic has not been
// seen yet; at level 0 everything passes. Both paths stop at the same cap.
func diversityFilter(sorted []ScoredCandidate, diversityLevel int) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(sorted))

	if diversityLevel <= 0 {
		for _, cand := range sorted {
			if len(out) >= diversityCap {
				break
			}
			out = append(out, cand)
		}
		return out
	}

	seenTypes := make(map[string]bool)
	seenTopics := make(map[string]bool)
	for _, cand := range sorted {
		if len(out) >= diversityCap {
			break
		}
		typeSeen := seenTypes[cand.Type]
		topicSeen := cand.PrimaryTopic != "" && seenTopics[cand.PrimaryTopic]
		if typeSeen && topicSeen {
			continue
		}
		seenTypes[cand.Type] = true
		if cand.PrimaryTopic != "" {
			seenTopics[cand.PrimaryTopic] = true
		}
		out = append(out, cand)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
