package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
	"github.com/cinegraph/cinegraph-backend/internal/platform/mongodb"
)

const (
	topRatedMinVotes   = 5000
	topRatedLimit      = 25
	recentMinVotes     = 50
	recentWindowDays   = 720
	recentLimit        = 25
	similarMinVotes    = 500
	similarLimit       = 10
	searchResultsLimit = 20
	yearFacetLimit     = 10
)

// voteBucketCeilings are the cumulative vote-count facet thresholds; the last
// one doubles as the catch-all for anything above it.
var voteBucketCeilings = []int{0, 1, 16, 19155}

// Store runs the read-only catalog queries. Every method returns an explicit
// error; callers decide whether to degrade to an empty result.
type Store struct {
	coll *mongo.Collection
	log  *logger.Logger

	textIndexOnce sync.Once
}

func NewStore(client *mongodb.Client, log *logger.Logger) *Store {
	return &Store{
		coll: client.Movies(),
		log:  log.With("store", "Catalog"),
	}
}

var summaryProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "poster_path", Value: 1},
	{Key: "release_date", Value: 1},
	{Key: "title", Value: 1},
	{Key: "vote_average", Value: 1},
	{Key: "vote_count", Value: 1},
}

// TopRated returns the 25 highest-rated movies with more than 5000 votes.
func (s *Store) TopRated(ctx context.Context) ([]domain.MovieSummary, error) {
	filter := bson.D{{Key: "vote_count", Value: bson.D{{Key: "$gt", Value: topRatedMinVotes}}}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "vote_average", Value: -1}}).
		SetLimit(topRatedLimit)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: top rated: %w", err)
	}
	var out []domain.MovieSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("catalog: top rated decode: %w", err)
	}
	return out, nil
}

// RecentReleased returns the 25 newest releases from the last 720 days with
// at least 50 votes.
func (s *Store) RecentReleased(ctx context.Context) ([]domain.MovieSummary, error) {
	now := time.Now()
	windowStart := now.AddDate(0, 0, -recentWindowDays)
	filter := bson.D{
		{Key: "vote_count", Value: bson.D{{Key: "$gte", Value: recentMinVotes}}},
		{Key: "release_date", Value: bson.D{
			{Key: "$gte", Value: windowStart},
			{Key: "$lte", Value: now},
		}},
	}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "release_date", Value: -1}}).
		SetLimit(recentLimit)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: recent released: %w", err)
	}
	var out []domain.MovieSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("catalog: recent released decode: %w", err)
	}
	return out, nil
}

// MovieDetails returns one movie with the extended projection, or nil when
// the ID is not in the catalog.
func (s *Store) MovieDetails(ctx context.Context, movieID int64) (*domain.MovieDetail, error) {
	projection := bson.D{
		{Key: "_id", Value: 1},
		{Key: "title", Value: 1},
		{Key: "genres", Value: 1},
		{Key: "overview", Value: 1},
		{Key: "poster_path", Value: 1},
		{Key: "release_date", Value: 1},
		{Key: "tagline", Value: 1},
		{Key: "vote_average", Value: 1},
		{Key: "vote_count", Value: 1},
	}
	var out domain.MovieDetail
	err := s.coll.FindOne(ctx,
		bson.D{{Key: "_id", Value: movieID}},
		options.FindOne().SetProjection(projection),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: movie details %d: %w", movieID, err)
	}
	return &out, nil
}

// SimilarMovies returns up to 10 movies sharing at least one genre with the
// given set, excluding the movie itself, ranked by shared-genre count then
// rating.
func (s *Store) SimilarMovies(ctx context.Context, movieID int64, genres []string) ([]domain.SimilarMovie, error) {
	if len(genres) == 0 {
		return []domain.SimilarMovie{}, nil
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: movieID}}},
			{Key: "vote_count", Value: bson.D{{Key: "$gte", Value: similarMinVotes}}},
			{Key: "genres", Value: bson.D{{Key: "$in", Value: genres}}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "match_count", Value: bson.D{
				{Key: "$size", Value: bson.D{
					{Key: "$setIntersection", Value: bson.A{"$genres", genres}},
				}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "match_count", Value: -1},
			{Key: "vote_average", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: similarLimit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "match_count", Value: 1},
			{Key: "poster_path", Value: 1},
			{Key: "release_date", Value: 1},
			{Key: "title", Value: 1},
			{Key: "vote_average", Value: 1},
			{Key: "vote_count", Value: 1},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("catalog: similar movies %d: %w", movieID, err)
	}
	var out []domain.SimilarMovie
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("catalog: similar movies %d decode: %w", movieID, err)
	}
	return out, nil
}

// SearchWithFacets runs one aggregation: the top 20 hits by relevance plus
// three facet breakdowns over the entire matching set.
func (s *Store) SearchWithFacets(ctx context.Context, query string) (*domain.SearchAggregation, error) {
	s.ensureTextIndex(ctx)

	voteBranches := make(bson.A, 0, len(voteBucketCeilings))
	for _, ceiling := range voteBucketCeilings {
		voteBranches = append(voteBranches, bson.D{
			{Key: "case", Value: bson.D{{Key: "$lte", Value: bson.A{"$vote_count", ceiling}}}},
			{Key: "then", Value: ceiling},
		})
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "$text", Value: bson.D{{Key: "$search", Value: query}}},
		}}},
		bson.D{{Key: "$facet", Value: bson.D{
			{Key: "searchResults", Value: bson.A{
				bson.D{{Key: "$addFields", Value: bson.D{
					{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{
					{Key: "score", Value: -1},
					{Key: "popularity", Value: -1},
					{Key: "vote_average", Value: -1},
				}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 1},
					{Key: "poster_path", Value: 1},
					{Key: "release_date", Value: 1},
					{Key: "score", Value: 1},
					{Key: "title", Value: 1},
					{Key: "vote_average", Value: 1},
					{Key: "vote_count", Value: 1},
				}}},
				bson.D{{Key: "$limit", Value: searchResultsLimit}},
			}},
			{Key: "genreFacet", Value: bson.A{
				bson.D{{Key: "$unwind", Value: "$genres"}},
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$genres"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
			}},
			{Key: "releaseYearFacet", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "release_date", Value: bson.D{
						{Key: "$exists", Value: true},
						{Key: "$ne", Value: nil},
					}},
				}}},
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.D{{Key: "$year", Value: "$release_date"}}},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
				bson.D{{Key: "$limit", Value: yearFacetLimit}},
			}},
			{Key: "votesFacet", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.D{
						{Key: "$switch", Value: bson.D{
							{Key: "branches", Value: voteBranches},
							{Key: "default", Value: voteBucketCeilings[len(voteBucketCeilings)-1]},
						}},
					}},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("catalog: search %q: %w", query, err)
	}
	var pages []domain.SearchAggregation
	if err := cur.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("catalog: search %q decode: %w", query, err)
	}
	if len(pages) == 0 {
		return &domain.SearchAggregation{}, nil
	}
	return &pages[0], nil
}

// MoviesByIDs bulk-resolves movie IDs to summaries. The result is keyed by ID
// because the lookup is unordered; IDs absent from the catalog are simply
// missing from the map.
func (s *Store) MoviesByIDs(ctx context.Context, movieIDs []int64) (map[int64]domain.MovieSummary, error) {
	if len(movieIDs) == 0 {
		return map[int64]domain.MovieSummary{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: movieIDs}}}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, fmt.Errorf("catalog: movies by ids: %w", err)
	}
	var rows []domain.MovieSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("catalog: movies by ids decode: %w", err)
	}
	out := make(map[int64]domain.MovieSummary, len(rows))
	for _, m := range rows {
		out[m.ID] = m
	}
	return out, nil
}

// MovieRefs streams the minimal projection of every movie, for mirroring the
// catalog into the likes graph.
func (s *Store) MovieRefs(ctx context.Context, fn func(domain.MovieRef) error) error {
	projection := bson.D{
		{Key: "_id", Value: 1},
		{Key: "title", Value: 1},
		{Key: "genres", Value: 1},
	}
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return fmt.Errorf("catalog: movie refs: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ref domain.MovieRef
		if err := cur.Decode(&ref); err != nil {
			return fmt.Errorf("catalog: movie refs decode: %w", err)
		}
		if err := fn(ref); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("catalog: movie refs cursor: %w", err)
	}
	return nil
}

// Full-text search needs the title text index. Creation is idempotent and
// best-effort; without it the search itself will error and the page degrades.
func (s *Store) ensureTextIndex(ctx context.Context) {
	s.textIndexOnce.Do(func() {
		_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "title", Value: "text"}},
		})
		if err != nil {
			s.log.Warn("text index init failed (continuing)", "error", err)
		}
	})
}
