package services

import (
	"context"

	"github.com/cinegraph/cinegraph-backend/internal/cache"
	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

// Pages produces the payloads the presentation layer renders. Every cached
// section goes through the cache-aside layer under the shared key scheme;
// store failures empty their section, log a warning, and leave the rest of
// the page intact.
type Pages struct {
	cache       *cache.Cache
	catalog     CatalogStore
	graph       GraphStore
	recommender *Recommender
	log         *logger.Logger
}

func NewPages(c *cache.Cache, catalog CatalogStore, graph GraphStore, recommender *Recommender, log *logger.Logger) *Pages {
	return &Pages{
		cache:       c,
		catalog:     catalog,
		graph:       graph,
		recommender: recommender,
		log:         log.With("service", "Pages"),
	}
}

// HomePage returns the top-rated, recent, and (with a username) personalized
// recommendation sections.
func (p *Pages) HomePage(ctx context.Context, username string) domain.HomePage {
	topRated, err := cache.GetOrCompute(ctx, p.cache, cache.KeyTopRated, cache.TTL, p.catalog.TopRated)
	if err != nil {
		p.log.Warn("top rated unavailable", "error", err)
		topRated = nil
	}

	recent, err := cache.GetOrCompute(ctx, p.cache, cache.KeyRecent, cache.TTL, p.catalog.RecentReleased)
	if err != nil {
		p.log.Warn("recent releases unavailable", "error", err)
		recent = nil
	}

	var recommendations []domain.MovieSummary
	if username != "" {
		recommendations, err = cache.GetOrCompute(ctx, p.cache, cache.RecommendationsKey(username), cache.TTL,
			func(ctx context.Context) ([]domain.MovieSummary, error) {
				return p.recommender.RecommendFor(ctx, username)
			})
		if err != nil {
			p.log.Warn("recommendations unavailable", "username", username, "error", err)
			recommendations = nil
		}
	}

	return domain.HomePage{
		TopRated:        orEmpty(topRated),
		Recent:          orEmpty(recent),
		Recommendations: orEmpty(recommendations),
	}
}

// Search runs the faceted full-text search. Results are not cached; the
// query space is too wide for a 300s TTL to pay off.
func (p *Pages) Search(ctx context.Context, query string) domain.SearchPage {
	raw, err := p.catalog.SearchWithFacets(ctx, query)
	if err != nil {
		p.log.Warn("search unavailable", "query", query, "error", err)
		return emptySearchPage()
	}
	return assembleSearchPage(raw)
}

// MoviePage returns the detail page payload. Likers need both a movie and a
// viewer; similar movies need the movie's genres, so both sections stay empty
// when the movie is not in the catalog.
func (p *Pages) MoviePage(ctx context.Context, movieID int64, username string) domain.MoviePage {
	details, err := cache.GetOrCompute(ctx, p.cache, cache.MovieDetailsKey(movieID), cache.TTL,
		func(ctx context.Context) (*domain.MovieDetail, error) {
			return p.catalog.MovieDetails(ctx, movieID)
		})
	if err != nil {
		p.log.Warn("movie details unavailable", "movie_id", movieID, "error", err)
		details = nil
	}

	var likers []string
	if details != nil && username != "" {
		likers, err = cache.GetOrCompute(ctx, p.cache, cache.LikersKey(username, movieID), cache.TTL,
			func(ctx context.Context) ([]string, error) {
				return p.graph.LikersOf(ctx, movieID, username)
			})
		if err != nil {
			p.log.Warn("likers unavailable", "movie_id", movieID, "error", err)
			likers = nil
		}
	}

	var similar []domain.SimilarMovie
	if details != nil {
		similar, err = cache.GetOrCompute(ctx, p.cache, cache.SimilarMoviesKey(movieID), cache.TTL,
			func(ctx context.Context) ([]domain.SimilarMovie, error) {
				return p.catalog.SimilarMovies(ctx, movieID, details.Genres)
			})
		if err != nil {
			p.log.Warn("similar movies unavailable", "movie_id", movieID, "error", err)
			similar = nil
		}
	}

	return domain.MoviePage{
		Details: details,
		Likers:  orEmpty(likers),
		Similar: orEmpty(similar),
	}
}
