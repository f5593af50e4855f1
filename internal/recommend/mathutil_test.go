package recommend

import (
	"math"
	"testing"
)

func TestJaccard_IdenticalSets(t *testing.T) {
	got := Jaccard([]string{"python", "ml"}, []string{"python", "ml"})
	if got != 1.0 {
		t.Fatalf("expected 1.0 got %v", got)
	}
}

func TestJaccard_DisjointSets(t *testing.T) {
	got := Jaccard([]string{"python"}, []string{"rust"})
	if got != 0.0 {
		t.Fatalf("expected 0.0 got %v", got)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	got := Jaccard([]string{"python", "ml"}, []string{"python", "data"})
	want := 1.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestJaccard_BothEmpty(t *testing.T) {
	if got := Jaccard(nil, nil); got != 0.0 {
		t.Fatalf("expected 0.0 got %v", got)
	}
}

func TestDifficultyMatch(t *testing.T) {
	cases := []struct {
		content, user int
		want          float64
	}{
		{0, 0, 1.0},
		{3, 3, 1.0},
		{0, 3, 0.0},
		{3, 0, 0.0},
		{1, 2, 1.0 - 1.0/3.0},
	}
	for _, c := range cases {
		got := DifficultyMatch(c.content, c.user)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("DifficultyMatch(%d,%d) = %v, want %v", c.content, c.user, got, c.want)
		}
		if got < 0 {
			t.Fatalf("DifficultyMatch(%d,%d) negative: %v", c.content, c.user, got)
		}
	}
}

func TestCosine_IdenticalVectors(t *testing.T) {
	v := map[string]float64{"a": 1, "b": 2}
	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 got %v", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	got := Cosine(map[string]float64{"a": 1}, map[string]float64{"b": 1})
	if got != 0.0 {
		t.Fatalf("expected 0.0 got %v", got)
	}
}

func TestStyleAlignment_UnknownPairsAreNeutral(t *testing.T) {
	if got := StyleAlignment("visual", "webinar"); got != 0.5 {
		t.Fatalf("expected 0.5 got %v", got)
	}
	if got := StyleAlignment("unspecified", "video"); got != 0.5 {
		t.Fatalf("expected 0.5 got %v", got)
	}
	if got := StyleAlignment("visual", "video"); got != 1.0 {
		t.Fatalf("expected 1.0 got %v", got)
	}
}
