//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"smartstay/internal/domain"
	mysqlrepo "smartstay/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndFind(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=smartstay",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "smartstay")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	seed := []domain.Listing{
		{ID: 1, Title: "Beach Hut", Description: "steps from the sand", Location: "Baga, Goa", Price: 2400, Amenities: []string{"WiFi"}},
		{ID: 2, Title: "Pool Resort", Description: "", Location: "Calangute, Goa", Price: 5200, Amenities: []string{"Pool", "Parking"}},
		{ID: 3, Title: "Hill Cottage", Description: "pine forest views", Location: "Manali, Himachal", Price: 1800, Amenities: []string{}},
	}
	for _, l := range seed {
		if err := repo.UpsertListing(ctx, l); err != nil {
			t.Fatalf("UpsertListing %d: %v", l.ID, err)
		}
	}

	// Single read round-trips JSON columns.
	got, err := repo.GetListing(ctx, 2)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.Title != "Pool Resort" || len(got.Amenities) != 2 {
		t.Fatalf("unexpected listing: %+v", got)
	}

	// Structural pushdown: location substring + inclusive price ceiling.
	found, err := repo.FindListings(ctx, domain.ListingFilter{Location: pstr("goa"), MaxPrice: pfloat(2400), Limit: 10})
	if err != nil {
		t.Fatalf("FindListings: %v", err)
	}
	if len(found) != 1 || found[0].ID != 1 {
		t.Fatalf("expected only the Baga hut at the price boundary, got %+v", found)
	}

	// Upsert overwrites in place.
	upd := seed[0]
	upd.Price = 2600
	if err := repo.UpsertListing(ctx, upd); err != nil {
		t.Fatalf("UpsertListing update: %v", err)
	}
	got, err = repo.GetListing(ctx, 1)
	if err != nil || got.Price != 2600 {
		t.Fatalf("update not applied: %+v err=%v", got, err)
	}

	// Delete then miss.
	if err := repo.DeleteListing(ctx, 3); err != nil {
		t.Fatalf("DeleteListing: %v", err)
	}
	if _, err := repo.GetListing(ctx, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteListing(ctx, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete should be ErrNotFound, got %v", err)
	}
}
