package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cinegraph/cinegraph-backend/internal/data/catalog"
	"github.com/cinegraph/cinegraph-backend/internal/data/graph"
	"github.com/cinegraph/cinegraph-backend/internal/domain"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
	"github.com/cinegraph/cinegraph-backend/internal/platform/mongodb"
	"github.com/cinegraph/cinegraph-backend/internal/platform/neo4jdb"
)

const movieBatchSize = 1000

// seedgraph is the offline likes ingestion batch: it mirrors the catalog's
// movies into the graph store and loads user likes from a tab-separated file
// (student_name, comma-joined movie_ids).
func main() {
	likesPath := flag.String("likes", "movies_likes.csv", "tab-separated likes file")
	reset := flag.Bool("reset", false, "clear the graph before importing")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	mongoClient, err := mongodb.NewFromEnv(log)
	if err != nil {
		log.Fatal("mongo init failed", "error", err)
	}
	defer mongoClient.Close(ctx)

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("neo4j init failed", "error", err)
	}
	defer graphClient.Close(ctx)

	if *reset {
		if err := graph.ClearAll(ctx, graphClient, log); err != nil {
			log.Fatal("clearing graph failed", "error", err)
		}
	}

	if err := graph.EnsureConstraints(ctx, graphClient, log); err != nil {
		log.Fatal("creating constraints failed", "error", err)
	}

	log.Info("importing movies from catalog...")
	if err := importMovies(ctx, mongoClient, graphClient, log); err != nil {
		log.Fatal("movie import failed", "error", err)
	}

	log.Info("importing likes...", "path", *likesPath)
	if err := importLikes(ctx, graphClient, log, *likesPath); err != nil {
		log.Fatal("likes import failed", "error", err)
	}

	log.Info("import completed")
}

func importMovies(ctx context.Context, mongoClient *mongodb.Client, graphClient *neo4jdb.Client, log *logger.Logger) error {
	store := catalog.NewStore(mongoClient, log)

	batch := make([]domain.MovieRef, 0, movieBatchSize)
	total := 0
	err := store.MovieRefs(ctx, func(ref domain.MovieRef) error {
		batch = append(batch, ref)
		if len(batch) >= movieBatchSize {
			if err := graph.UpsertMovieBatch(ctx, graphClient, log, batch); err != nil {
				return err
			}
			total += len(batch)
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(batch) > 0 {
		if err := graph.UpsertMovieBatch(ctx, graphClient, log, batch); err != nil {
			return err
		}
		total += len(batch)
	}
	log.Info("movies imported", "count", total)
	return nil
}

func importLikes(ctx context.Context, graphClient *neo4jdb.Client, log *logger.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open likes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read likes file: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("likes file is empty")
	}

	nameCol, idsCol := -1, -1
	for i, col := range rows[0] {
		switch strings.TrimSpace(col) {
		case "student_name":
			nameCol = i
		case "movie_ids":
			idsCol = i
		}
	}
	if nameCol < 0 || idsCol < 0 {
		return fmt.Errorf("likes file missing student_name/movie_ids columns")
	}

	users := 0
	for _, row := range rows[1:] {
		if len(row) <= nameCol || len(row) <= idsCol {
			continue
		}
		username := strings.TrimSpace(row[nameCol])
		movieIDs := parseMovieIDs(row[idsCol])
		if username == "" || len(movieIDs) == 0 {
			continue
		}
		if err := graph.MergeUserLikes(ctx, graphClient, log, username, movieIDs); err != nil {
			return err
		}
		users++
	}
	log.Info("likes imported", "users", users)
	return nil
}

func parseMovieIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
