package domain

// HomePage bundles the three home sections. Sections degrade independently:
// a failing backend empties its section without touching the others.
type HomePage struct {
	TopRated        []MovieSummary `json:"topRated"`
	Recent          []MovieSummary `json:"recent"`
	Recommendations []MovieSummary `json:"recommendations"`
}

// MoviePage bundles the detail page sections. Details is nil when the movie
// is not in the catalog; Likers and Similar are then empty.
type MoviePage struct {
	Details *MovieDetail   `json:"details"`
	Likers  []string       `json:"likers"`
	Similar []SimilarMovie `json:"similar"`
}

// MovieRef is the minimal movie projection mirrored into the likes graph.
type MovieRef struct {
	ID     int64    `bson:"_id"`
	Title  string   `bson:"title"`
	Genres []string `bson:"genres"`
}
