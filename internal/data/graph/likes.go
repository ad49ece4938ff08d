package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
	"github.com/cinegraph/cinegraph-backend/internal/platform/neo4jdb"
)

// Store runs the read-only likes traversals.
type Store struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewStore(client *neo4jdb.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		log:    log.With("store", "LikesGraph"),
	}
}

// LikersOf returns the usernames of everyone who likes the movie, excluding
// the viewer, in alphabetical order.
func (s *Store) LikersOf(ctx context.Context, movieID int64, excludingUser string) ([]string, error) {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return nil, fmt.Errorf("graph: likers: not connected")
	}

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (u:User)-[:LIKES]->(m:Movie {id: $movie_id})
WHERE u.username <> $username
RETURN u.username AS username
ORDER BY u.username
`, map[string]any{"movie_id": movieID, "username": excludingUser})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		usernames := make([]string, 0, len(records))
		for _, rec := range records {
			v, ok := rec.Get("username")
			if !ok {
				continue
			}
			if name, ok := v.(string); ok {
				usernames = append(usernames, name)
			}
		}
		return usernames, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: likers of %d: %w", movieID, err)
	}
	return out.([]string), nil
}

// LikesByUser returns every user's liked-movie ID set in one traversal. The
// similarity engine works on these sets in memory.
func (s *Store) LikesByUser(ctx context.Context) (map[string][]int64, error) {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return nil, fmt.Errorf("graph: likes by user: not connected")
	}

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (u:User)-[:LIKES]->(m:Movie)
RETURN u.username AS username, collect(m.id) AS movie_ids
`, nil)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		likes := make(map[string][]int64, len(records))
		for _, rec := range records {
			nameVal, ok := rec.Get("username")
			if !ok {
				continue
			}
			name, ok := nameVal.(string)
			if !ok {
				continue
			}
			idsVal, _ := rec.Get("movie_ids")
			rawIDs, _ := idsVal.([]any)
			ids := make([]int64, 0, len(rawIDs))
			for _, raw := range rawIDs {
				if id, ok := raw.(int64); ok {
					ids = append(ids, id)
				}
			}
			likes[name] = ids
		}
		return likes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: likes by user: %w", err)
	}
	return out.(map[string][]int64), nil
}
