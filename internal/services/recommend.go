package services

import (
	"context"
	"sort"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

const (
	neighborCount       = 3
	recommendationLimit = 10
)

// Recommender computes personalized recommendations by similarity-weighted
// neighbor voting over the likes graph.
type Recommender struct {
	graph   GraphStore
	catalog CatalogStore
	log     *logger.Logger
}

func NewRecommender(graph GraphStore, catalog CatalogStore, log *logger.Logger) *Recommender {
	return &Recommender{
		graph:   graph,
		catalog: catalog,
		log:     log.With("service", "Recommender"),
	}
}

// TopSimilarNeighbors ranks every other user by Jaccard similarity of
// liked-movie sets against username and keeps the k best strictly positive
// scores. Equal scores order by username ascending.
func (r *Recommender) TopSimilarNeighbors(ctx context.Context, username string, k int) ([]domain.Neighbor, error) {
	likes, err := r.graph.LikesByUser(ctx)
	if err != nil {
		return nil, err
	}
	return topSimilarNeighbors(likes, username, k), nil
}

// RecommendFor returns up to 10 movies liked by the user's most similar
// neighbors, ranked by how many of those neighbors like each one, resolved
// against the catalog in that rank order. Movies the user already likes never
// appear; candidate IDs missing from the catalog are dropped.
func (r *Recommender) RecommendFor(ctx context.Context, username string) ([]domain.MovieSummary, error) {
	likes, err := r.graph.LikesByUser(ctx)
	if err != nil {
		return nil, err
	}

	neighbors := topSimilarNeighbors(likes, username, neighborCount)
	candidateIDs := rankCandidates(likes, username, neighbors, recommendationLimit)
	if len(candidateIDs) == 0 {
		return []domain.MovieSummary{}, nil
	}

	byID, err := r.catalog.MoviesByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MovieSummary, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if movie, ok := byID[id]; ok {
			out = append(out, movie)
		}
	}
	return out, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// jaccard is |A∩B| / |A∪B|, with an empty union scoring 0.
func jaccard(a, b map[int64]struct{}) float64 {
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func topSimilarNeighbors(likes map[string][]int64, username string, k int) []domain.Neighbor {
	active := toSet(likes[username])
	neighbors := make([]domain.Neighbor, 0, len(likes))
	for name, ids := range likes {
		if name == username {
			continue
		}
		score := jaccard(active, toSet(ids))
		if score > 0 {
			neighbors = append(neighbors, domain.Neighbor{Username: name, Score: score})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].Username < neighbors[j].Username
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// rankCandidates counts, per movie not already liked by username, how many of
// the given neighbors like it, and returns the top IDs by support descending,
// movie ID ascending.
func rankCandidates(likes map[string][]int64, username string, neighbors []domain.Neighbor, limit int) []int64 {
	active := toSet(likes[username])
	support := make(map[int64]int)
	for _, neighbor := range neighbors {
		for id := range toSet(likes[neighbor.Username]) {
			if _, alreadyLiked := active[id]; alreadyLiked {
				continue
			}
			support[id]++
		}
	}

	ids := make([]int64, 0, len(support))
	for id := range support {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if support[ids[i]] != support[ids[j]] {
			return support[ids[i]] > support[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}
