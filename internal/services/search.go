package services

import (
	"fmt"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
)

// Display labels for the vote-count facet, keyed by bucket ceiling.
var voteBucketLabels = map[int64]string{
	0:     "Unrated (0 votes)",
	1:     "Barely rated (1 vote)",
	16:    "Moderately rated (up to 16 votes)",
	19155: "Highly rated (up to 19155 votes)",
}

func labelVoteBuckets(rows []domain.VoteCountRow) []domain.VoteBucket {
	out := make([]domain.VoteBucket, 0, len(rows))
	for _, row := range rows {
		label, ok := voteBucketLabels[row.Threshold]
		if !ok {
			label = fmt.Sprintf("Up to %d votes", row.Threshold)
		}
		out = append(out, domain.VoteBucket{Label: label, Count: row.Count})
	}
	return out
}

// assembleSearchPage turns the raw aggregation into the rendered page,
// labeling vote buckets and guaranteeing non-nil lists throughout.
func assembleSearchPage(raw *domain.SearchAggregation) domain.SearchPage {
	if raw == nil {
		return emptySearchPage()
	}
	return domain.SearchPage{
		Results:    orEmpty(raw.Hits),
		GenreFacet: orEmpty(raw.GenreFacet),
		YearFacet:  orEmpty(raw.YearFacet),
		VoteFacet:  labelVoteBuckets(raw.VoteRows),
	}
}

func emptySearchPage() domain.SearchPage {
	return domain.SearchPage{
		Results:    []domain.SearchHit{},
		GenreFacet: []domain.GenreBucket{},
		YearFacet:  []domain.YearBucket{},
		VoteFacet:  []domain.VoteBucket{},
	}
}

// orEmpty pins nil slices to empty ones so pages always render lists.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
