package recommend

import "context"

const hybridConfidenceScale = 0.9

// Hybrid is the union of the content-based and collaborative results with
// confidence uniformly scaled down, reflecting the blended provenance.
type Hybrid struct {
	ContentBased  Strategy
	Collaborative Strategy
}

func (s *Hybrid) Name() string { return StrategyHybrid }

func (s *Hybrid) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	var out []ScoredCandidate

	if s.ContentBased != nil {
		cands, err := s.ContentBased.Recommend(ctx, profile, req)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	if s.Collaborative != nil {
		cands, err := s.Collaborative.Recommend(ctx, profile, req)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}

	for i := range out {
		out[i].Type = StrategyHybrid
		out[i].ConfidenceScore *= hybridConfidenceScale
	}
	return out, nil
}
