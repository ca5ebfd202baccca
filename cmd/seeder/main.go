package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"smartstay/internal/adapters/observability"
	redisad "smartstay/internal/adapters/redis"
	"smartstay/internal/app"
	"smartstay/internal/shared"
	mysqlrepo "smartstay/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("read seed file failed")
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("seed file is not a JSON array of objects")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seed := app.NewSeedService(app.NewListingService(repo, cache))

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, rec := range records {
		rec := rec

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(payload map[string]any) {
			defer wg.Done()
			defer sem.Release(int64(1))

			id, err := seed.SeedListing(ctx, payload)
			if err != nil {
				log.Warn().Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", id).Msg("seed ok")
		}(rec)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
