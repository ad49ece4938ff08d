package services

import (
	"context"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
)

// CatalogStore is the slice of the catalog the services consume.
// *catalog.Store satisfies it; tests substitute fakes.
type CatalogStore interface {
	TopRated(ctx context.Context) ([]domain.MovieSummary, error)
	RecentReleased(ctx context.Context) ([]domain.MovieSummary, error)
	MovieDetails(ctx context.Context, movieID int64) (*domain.MovieDetail, error)
	SimilarMovies(ctx context.Context, movieID int64, genres []string) ([]domain.SimilarMovie, error)
	SearchWithFacets(ctx context.Context, query string) (*domain.SearchAggregation, error)
	MoviesByIDs(ctx context.Context, movieIDs []int64) (map[int64]domain.MovieSummary, error)
}

// GraphStore is the slice of the likes graph the services consume.
// *graph.Store satisfies it.
type GraphStore interface {
	LikersOf(ctx context.Context, movieID int64, excludingUser string) ([]string, error)
	LikesByUser(ctx context.Context) (map[string][]int64, error)
}
