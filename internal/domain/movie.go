package domain

import "time"

// MovieSummary is the fixed projection shared by the list queries: top rated,
// recent releases, recommendations, and search hits all carry exactly these
// fields. JSON field names match the cached payloads written by earlier
// deployments, so existing cache entries keep decoding.
type MovieSummary struct {
	ID          int64      `bson:"_id" json:"_id"`
	PosterPath  string     `bson:"poster_path" json:"poster_path"`
	ReleaseDate *time.Time `bson:"release_date" json:"release_date"`
	Title       string     `bson:"title" json:"title"`
	VoteAverage float64    `bson:"vote_average" json:"vote_average"`
	VoteCount   int64      `bson:"vote_count" json:"vote_count"`
}

// MovieDetail extends the summary projection for the movie page.
type MovieDetail struct {
	MovieSummary `bson:",inline"`
	Genres       []string `bson:"genres" json:"genres"`
	Overview     string   `bson:"overview" json:"overview"`
	Tagline      string   `bson:"tagline" json:"tagline"`
}

// SimilarMovie annotates a summary with the number of genres it shares with
// the movie the viewer is looking at. MatchCount is a distinct field rather
// than an overload of the genres list.
type SimilarMovie struct {
	MovieSummary `bson:",inline"`
	MatchCount   int64 `bson:"match_count" json:"match_count"`
}

// Neighbor is a user whose liked-movie set overlaps the active user's,
// scored by Jaccard index.
type Neighbor struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}
