package domain

// SearchHit is a full-text match annotated with its relevance score.
type SearchHit struct {
	MovieSummary `bson:",inline"`
	Score        float64 `bson:"score" json:"score"`
}

// GenreBucket counts matches per genre. A movie with N genres contributes to
// N buckets.
type GenreBucket struct {
	Genre string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// YearBucket counts matches per release calendar year.
type YearBucket struct {
	Year  int   `bson:"_id" json:"_id"`
	Count int64 `bson:"count" json:"count"`
}

// VoteCountRow is the raw vote-count facet row as aggregated by the catalog
// store: the bucket's ceiling threshold plus its count. The search assembly
// maps thresholds to display labels.
type VoteCountRow struct {
	Threshold int64 `bson:"_id" json:"_id"`
	Count     int64 `bson:"count" json:"count"`
}

// VoteBucket is a labeled vote-count facet bucket.
type VoteBucket struct {
	Label string `json:"_id"`
	Count int64  `json:"count"`
}

// SearchAggregation is the single-pass facet aggregation over the full
// matching set, as returned by the catalog store.
type SearchAggregation struct {
	Hits       []SearchHit    `bson:"searchResults"`
	GenreFacet []GenreBucket  `bson:"genreFacet"`
	YearFacet  []YearBucket   `bson:"releaseYearFacet"`
	VoteRows   []VoteCountRow `bson:"votesFacet"`
}

// SearchPage is what the presentation layer renders for a search.
type SearchPage struct {
	Results    []SearchHit   `json:"searchResults"`
	GenreFacet []GenreBucket `json:"genreFacet"`
	YearFacet  []YearBucket  `json:"releaseYearFacet"`
	VoteFacet  []VoteBucket  `json:"votesFacet"`
}
