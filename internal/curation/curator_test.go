package curation

import (
	"testing"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

func candidate(handle string, score float64) scoring.MatchCandidate {
	return scoring.MatchCandidate{
		Candidate: scoring.Candidate{
			VariantID:         uuid.New(),
			BaseProductHandle: handle,
			Title:             handle,
		},
		TotalScore: score,
	}
}

func newTestCurator(t *testing.T) *Curator {
	t.Helper()
	c, err := NewCurator(0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestCurate(t *testing.T) {
	curator := newTestCurator(t)

	t.Run("sorts descending with deterministic tie-break", func(t *testing.T) {
		a := candidate("a", 0.9)
		b := candidate("b", 0.7)
		tie1 := candidate("c", 0.8)
		tie2 := candidate("d", 0.8)

		out := curator.Curate([]scoring.MatchCandidate{b, tie2, a, tie1}, 10)
		if len(out) != 4 {
			t.Fatalf("expected 4 results, got %d", len(out))
		}
		if out[0].BaseProductHandle != "a" || out[3].BaseProductHandle != "b" {
			t.Fatalf("unexpected order: %v %v", out[0].BaseProductHandle, out[3].BaseProductHandle)
		}
		wantSecond := tie1
		if tie2.VariantID.String() < tie1.VariantID.String() {
			wantSecond = tie2
		}
		if out[1].VariantID != wantSecond.VariantID {
			t.Fatal("tie not broken by variant id ascending")
		}

		// identical input always produces identical output
		again := curator.Curate([]scoring.MatchCandidate{b, tie2, a, tie1}, 10)
		for i := range out {
			if out[i].VariantID != again[i].VariantID {
				t.Fatalf("ordering changed between runs at index %d", i)
			}
		}
	})

	t.Run("dedup keeps best variant per base product", func(t *testing.T) {
		high := candidate("same-style", 0.9)
		low := candidate("same-style", 0.6)
		other := candidate("other-style", 0.7)

		out := curator.Curate([]scoring.MatchCandidate{low, other, high}, 2)
		if len(out) != 2 {
			t.Fatalf("expected 2 results, got %d", len(out))
		}
		if out[0].VariantID != high.VariantID {
			t.Fatal("expected the higher-scored variant to be primary")
		}
		if out[1].VariantID != other.VariantID {
			t.Fatal("expected distinct base products before alternatives")
		}
		for _, mc := range out {
			if mc.IsAlternativeStyle {
				t.Fatal("no alternative needed at this limit")
			}
		}
	})

	t.Run("alternatives fill remaining slots", func(t *testing.T) {
		high := candidate("same-style", 0.9)
		low := candidate("same-style", 0.6)
		other := candidate("other-style", 0.7)

		out := curator.Curate([]scoring.MatchCandidate{low, other, high}, 3)
		if len(out) != 3 {
			t.Fatalf("expected 3 results, got %d", len(out))
		}
		if !out[2].IsAlternativeStyle {
			t.Fatal("filler entry must be flagged as alternative style")
		}
		if out[2].VariantID != low.VariantID {
			t.Fatal("expected the duplicate variant as the alternative")
		}
	})

	t.Run("limit one keeps only the winner unflagged", func(t *testing.T) {
		high := candidate("same-style", 0.9)
		low := candidate("same-style", 0.6)

		out := curator.Curate([]scoring.MatchCandidate{low, high}, 1)
		if len(out) != 1 {
			t.Fatalf("expected 1 result, got %d", len(out))
		}
		if out[0].VariantID != high.VariantID {
			t.Fatal("expected the higher-scored variant")
		}
		if out[0].IsAlternativeStyle {
			t.Fatal("primary must not be flagged alternative")
		}
	})

	t.Run("empty pool curates to empty list", func(t *testing.T) {
		out := curator.Curate(nil, 5)
		if len(out) != 0 {
			t.Fatalf("expected empty result, got %d", len(out))
		}
	})
}

func TestBadges(t *testing.T) {
	curator := newTestCurator(t)

	t.Run("top match only above floor", func(t *testing.T) {
		strong := candidate("strong", 0.8)
		out := curator.Curate([]scoring.MatchCandidate{strong}, 1)
		if !hasBadge(out[0], enums.MatchBadgeTopMatch) {
			t.Fatal("expected top match badge")
		}

		weak := candidate("weak", 0.3)
		out = curator.Curate([]scoring.MatchCandidate{weak}, 1)
		if hasBadge(out[0], enums.MatchBadgeTopMatch) {
			t.Fatal("no top match badge below the floor")
		}
	})

	t.Run("on sale from compare-at markdown", func(t *testing.T) {
		compare := 10000
		onSale := candidate("sale", 0.9)
		onSale.PriceCents = 7500
		onSale.CompareAtPriceCents = &compare

		out := curator.Curate([]scoring.MatchCandidate{onSale}, 1)
		if !hasBadge(out[0], enums.MatchBadgeOnSale) {
			t.Fatal("expected on sale badge")
		}
	})

	t.Run("popular badge from popularity score", func(t *testing.T) {
		popular := candidate("popular", 0.9)
		popular.PopularityScore = 0.85
		out := curator.Curate([]scoring.MatchCandidate{popular}, 1)
		if !hasBadge(out[0], enums.MatchBadgePopular) {
			t.Fatal("expected popular badge")
		}
	})
}

func TestPercentOff(t *testing.T) {
	compare := 10000
	if got := PercentOff(7500, &compare); got.IntPart() != 25 {
		t.Fatalf("expected 25, got %s", got)
	}
	if got := PercentOff(10000, &compare); !got.IsZero() {
		t.Fatalf("expected zero for no markdown, got %s", got)
	}
	if got := PercentOff(7500, nil); !got.IsZero() {
		t.Fatalf("expected zero for missing compare-at, got %s", got)
	}
	higher := 5000
	if got := PercentOff(7500, &higher); !got.IsZero() {
		t.Fatalf("expected zero when price exceeds compare-at, got %s", got)
	}
}

func hasBadge(mc scoring.MatchCandidate, badge enums.MatchBadge) bool {
	for _, b := range mc.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
