package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

func TestJaccard_Symmetric(t *testing.T) {
	pairs := [][2][]int64{
		{{1, 2, 3}, {2, 3, 4}},
		{{1}, {1}},
		{{1, 2}, {}},
		{{}, {}},
		{{5, 6, 7, 8}, {8}},
	}
	for _, pair := range pairs {
		a, b := toSet(pair[0]), toSet(pair[1])
		if jaccard(a, b) != jaccard(b, a) {
			t.Fatalf("jaccard not symmetric for %v / %v", pair[0], pair[1])
		}
	}
}

func TestJaccard_EmptySetsScoreZero(t *testing.T) {
	if got := jaccard(toSet(nil), toSet([]int64{1, 2})); got != 0 {
		t.Fatalf("expected 0 when one side is empty, got %v", got)
	}
	if got := jaccard(toSet(nil), toSet(nil)); got != 0 {
		t.Fatalf("expected 0 for empty union, got %v", got)
	}
}

func TestJaccard_AliceBobIsHalf(t *testing.T) {
	got := jaccard(toSet([]int64{1, 2, 3}), toSet([]int64{2, 3, 4}))
	if got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestTopSimilarNeighbors_PositiveScoresOnly(t *testing.T) {
	likes := map[string][]int64{
		"alice": {1, 2, 3},
		"bob":   {2, 3, 4},
		"carol": {7, 8},
	}
	got := topSimilarNeighbors(likes, "alice", 3)
	if len(got) != 1 || got[0].Username != "bob" {
		t.Fatalf("expected only bob, got %v", got)
	}
	if got[0].Score != 0.5 {
		t.Fatalf("expected score 0.5, got %v", got[0].Score)
	}
}

func TestTopSimilarNeighbors_TieBreaksByUsername(t *testing.T) {
	likes := map[string][]int64{
		"alice": {1, 2},
		"zed":   {1, 2},
		"bob":   {1, 2},
		"carol": {1},
	}
	got := topSimilarNeighbors(likes, "alice", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors, got %v", got)
	}
	if got[0].Username != "bob" || got[1].Username != "zed" {
		t.Fatalf("equal scores must order by username, got %v", got)
	}
}

func TestTopSimilarNeighbors_UserWithNoLikes(t *testing.T) {
	likes := map[string][]int64{
		"bob": {1, 2},
	}
	if got := topSimilarNeighbors(likes, "alice", 3); len(got) != 0 {
		t.Fatalf("expected no neighbors for a user with no likes, got %v", got)
	}
}

func TestRankCandidates_ExcludesOwnLikesAndOrders(t *testing.T) {
	likes := map[string][]int64{
		"alice": {1},
		"bob":   {1, 4, 5},
		"carol": {4, 6},
	}
	neighbors := []domain.Neighbor{{Username: "bob"}, {Username: "carol"}}
	got := rankCandidates(likes, "alice", neighbors, 10)
	// 4 has support 2; 5 and 6 have support 1, tie-broken by ID.
	want := []int64{4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRankCandidates_Truncates(t *testing.T) {
	neighborLikes := make([]int64, 0, 30)
	for id := int64(1); id <= 30; id++ {
		neighborLikes = append(neighborLikes, id)
	}
	likes := map[string][]int64{
		"alice": {},
		"bob":   neighborLikes,
	}
	got := rankCandidates(likes, "alice", []domain.Neighbor{{Username: "bob"}}, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 candidates, got %d", len(got))
	}
}

func TestRecommendFor_ScenarioC(t *testing.T) {
	graph := &fakeGraph{likes: map[string][]int64{
		"alice": {1, 2, 3},
		"bob":   {2, 3, 4},
	}}
	movie4 := domain.MovieSummary{ID: 4, Title: "Parasite"}
	cat := &fakeCatalog{movies: map[int64]domain.MovieSummary{4: movie4}}
	rec := NewRecommender(graph, cat, logger.Nop())

	got, err := rec.RecommendFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected [movie 4], got %v", got)
	}

	// Same graph, movie 4 missing from the catalog: dropped, not replaced.
	cat.movies = map[int64]domain.MovieSummary{}
	got, err = rec.RecommendFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestRecommendFor_NeverIncludesOwnLikes(t *testing.T) {
	graph := &fakeGraph{likes: map[string][]int64{
		"alice": {1, 2, 3, 4},
		"bob":   {1, 2, 5, 6},
		"carol": {3, 4, 5, 7},
		"dave":  {2, 6, 7, 8},
	}}
	movies := make(map[int64]domain.MovieSummary)
	for id := int64(1); id <= 8; id++ {
		movies[id] = domain.MovieSummary{ID: id}
	}
	rec := NewRecommender(graph, &fakeCatalog{movies: movies}, logger.Nop())

	got, err := rec.RecommendFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected recommendations")
	}
	own := toSet(graph.likes["alice"])
	for _, m := range got {
		if _, liked := own[m.ID]; liked {
			t.Fatalf("recommendation %d is already liked", m.ID)
		}
	}
}

func TestRecommendFor_SupportOrderNonIncreasing(t *testing.T) {
	graph := &fakeGraph{likes: map[string][]int64{
		"alice": {100},
		"bob":   {100, 1, 2, 3},
		"carol": {100, 2, 3},
		"dave":  {100, 3},
	}}
	movies := make(map[int64]domain.MovieSummary)
	for _, id := range []int64{1, 2, 3} {
		movies[id] = domain.MovieSummary{ID: id}
	}
	rec := NewRecommender(graph, &fakeCatalog{movies: movies}, logger.Nop())

	got, err := rec.RecommendFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Supports: 3→3, 2→2, 1→1.
	want := []int64{3, 2, 1}
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %v", got)
	}
	for i, m := range got {
		if m.ID != want[i] {
			t.Fatalf("expected order %v, got %v at %d", want, m.ID, i)
		}
	}
}

func TestRecommendFor_GraphErrorSurfaces(t *testing.T) {
	graph := &fakeGraph{err: errors.New("bolt refused")}
	rec := NewRecommender(graph, &fakeCatalog{}, logger.Nop())
	if _, err := rec.RecommendFor(context.Background(), "alice"); err == nil {
		t.Fatalf("expected error from graph store")
	}
}

func TestRecommendFor_NoLikesEmpty(t *testing.T) {
	graph := &fakeGraph{likes: map[string][]int64{"bob": {1, 2}}}
	rec := NewRecommender(graph, &fakeCatalog{}, logger.Nop())
	got, err := rec.RecommendFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty for user with no likes, got %v", got)
	}
}
