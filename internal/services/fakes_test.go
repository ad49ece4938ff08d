package services

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
)

type fakeCatalog struct {
	topRated  []domain.MovieSummary
	recent    []domain.MovieSummary
	details   map[int64]*domain.MovieDetail
	similar   []domain.SimilarMovie
	searchAgg *domain.SearchAggregation
	movies    map[int64]domain.MovieSummary
	err       error

	topRatedCalls     int
	recentCalls       int
	detailsCalls      int
	similarCalls      int
	searchCalls       int
	byIDsCalls        int
	lastSimilarGenres []string
	lastSimilarID     int64
}

func (f *fakeCatalog) TopRated(ctx context.Context) ([]domain.MovieSummary, error) {
	f.topRatedCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.topRated, nil
}

func (f *fakeCatalog) RecentReleased(ctx context.Context) ([]domain.MovieSummary, error) {
	f.recentCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recent, nil
}

func (f *fakeCatalog) MovieDetails(ctx context.Context, movieID int64) (*domain.MovieDetail, error) {
	f.detailsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.details[movieID], nil
}

func (f *fakeCatalog) SimilarMovies(ctx context.Context, movieID int64, genres []string) ([]domain.SimilarMovie, error) {
	f.similarCalls++
	f.lastSimilarID = movieID
	f.lastSimilarGenres = genres
	if f.err != nil {
		return nil, f.err
	}
	return f.similar, nil
}

func (f *fakeCatalog) SearchWithFacets(ctx context.Context, query string) (*domain.SearchAggregation, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.searchAgg, nil
}

func (f *fakeCatalog) MoviesByIDs(ctx context.Context, movieIDs []int64) (map[int64]domain.MovieSummary, error) {
	f.byIDsCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]domain.MovieSummary)
	for _, id := range movieIDs {
		if m, ok := f.movies[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

type fakeGraph struct {
	likes  map[string][]int64
	likers []string
	err    error

	likersCalls     int
	likesCalls      int
	lastLikersMovie int64
	lastLikersUser  string
}

func (f *fakeGraph) LikersOf(ctx context.Context, movieID int64, excludingUser string) ([]string, error) {
	f.likersCalls++
	f.lastLikersMovie = movieID
	f.lastLikersUser = excludingUser
	if f.err != nil {
		return nil, f.err
	}
	return f.likers, nil
}

func (f *fakeGraph) LikesByUser(ctx context.Context) (map[string][]int64, error) {
	f.likesCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.likes, nil
}

type fakeRedis struct {
	data map[string][]byte
	keys []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	raw, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(string(raw), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	f.data[key] = value.([]byte)
	f.keys = append(f.keys, key)
	return goredis.NewStatusResult("OK", nil)
}
