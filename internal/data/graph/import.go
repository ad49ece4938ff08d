package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
	"github.com/cinegraph/cinegraph-backend/internal/platform/neo4jdb"
)

// Write path for the offline likes ingestion batch (cmd/seedgraph). The
// serving layer never writes to the graph.

func EnsureConstraints(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) error {
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	statements := []string{
		`CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE`,
		`CREATE CONSTRAINT user_name IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE`,
	}
	for _, stmt := range statements {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("graph: create constraint: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("graph: create constraint: %w", err)
		}
	}
	return nil
}

// ClearAll removes every node and relationship.
func ClearAll(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) error {
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (n) DETACH DELETE n`, nil)
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("graph: clear: %w", err)
	}
	log.Info("graph cleared")
	return nil
}

// UpsertMovieBatch merges one batch of movie nodes.
func UpsertMovieBatch(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, batch []domain.MovieRef) error {
	if len(batch) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(batch))
	for _, ref := range batch {
		rows = append(rows, map[string]any{
			"id":     ref.ID,
			"title":  ref.Title,
			"genres": ref.Genres,
		})
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $movies AS movie
MERGE (m:Movie {id: movie.id})
SET m.title = movie.title,
    m.genres = movie.genres
`, map[string]any{"movies": rows})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("graph: upsert movie batch: %w", err)
	}
	return nil
}

// MergeUserLikes merges the user node and one LIKES edge per movie ID. IDs
// with no Movie node are skipped by the MATCH.
func MergeUserLikes(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, username string, movieIDs []int64) error {
	if username == "" || len(movieIDs) == 0 {
		return nil
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (u:User {username: $username})
WITH u
UNWIND $movie_ids AS movie_id
MATCH (m:Movie {id: movie_id})
MERGE (u)-[:LIKES]->(m)
`, map[string]any{"username": username, "movie_ids": movieIDs})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("graph: merge likes for %s: %w", username, err)
	}
	return nil
}
