package cache

import "fmt"

// Key scheme shared with earlier deployments. Changing any of these patterns
// orphans every entry already in the cache store.
const (
	KeyTopRated = "top_rated_movies"
	KeyRecent   = "recent_movies"
)

func RecommendationsKey(username string) string {
	return "recommendations_" + username
}

func MovieDetailsKey(movieID int64) string {
	return fmt.Sprintf("movie_details_%d", movieID)
}

func LikersKey(username string, movieID int64) string {
	return fmt.Sprintf("likes_%s_%d", username, movieID)
}

func SimilarMoviesKey(movieID int64) string {
	return fmt.Sprintf("similar_movies_%d", movieID)
}
