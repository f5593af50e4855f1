package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestSkillGap_MatchesGapSkills(t *testing.T) {
	courseID := uuid.New()
	store := &fakeContentStore{contents: []Content{
		{CourseID: courseID, Skills: []string{"kubernetes", "docker"}},
		{CourseID: uuid.New(), Skills: []string{"photoshop"}},
	}}
	strategy := &SkillGap{Contents: store}
	profile := &Profile{SkillGaps: []string{"kubernetes", "terraform"}}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	got := cands[0]
	if got.CourseID != courseID {
		t.Fatalf("wrong course matched")
	}
	if got.ConfidenceScore != skillGapConfidence {
		t.Fatalf("confidence = %v, want %v", got.ConfidenceScore, skillGapConfidence)
	}
	// one of two gaps covered
	want := 0.7 + 0.3*0.5
	if math.Abs(got.RelevanceScore-want) > 1e-9 {
		t.Fatalf("relevance = %v, want %v", got.RelevanceScore, want)
	}
}

func TestSkillGap_CareerPathVariant(t *testing.T) {
	store := &fakeContentStore{contents: []Content{
		{CourseID: uuid.New(), Skills: []string{"sql"}},
	}}
	strategy := &SkillGap{Contents: store, CareerPath: true}
	profile := &Profile{SkillGaps: []string{"sql"}}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Type != StrategyCareerPath {
		t.Fatalf("type = %q, want %q", cands[0].Type, StrategyCareerPath)
	}
	if cands[0].ConfidenceScore != careerPathConfidence {
		t.Fatalf("confidence = %v, want %v", cands[0].ConfidenceScore, careerPathConfidence)
	}
}

func TestEffectiveSkillGaps_DerivedFromRequired(t *testing.T) {
	p := &Profile{
		RequiredSkills: []string{"go", "sql", "kubernetes"},
		Skills:         []string{"go"},
		SkillLevels:    map[string]SkillLevel{"sql": {Level: 2}},
	}
	gaps := p.EffectiveSkillGaps()
	if len(gaps) != 1 || gaps[0] != "kubernetes" {
		t.Fatalf("gaps = %v, want [kubernetes]", gaps)
	}

	p = &Profile{SkillGaps: []string{"rust"}, RequiredSkills: []string{"go"}}
	gaps = p.EffectiveSkillGaps()
	if len(gaps) != 1 || gaps[0] != "rust" {
		t.Fatalf("declared gaps should win, got %v", gaps)
	}
}
