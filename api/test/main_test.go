package test

import (
	"log"
	"os"
	"testing"

	"github.com/irsalhamdi/art-market/config"
	"github.com/irsalhamdi/art-market/database"
	"github.com/ory/dockertest/v3"
)

// dbHost points at the throwaway postgres container shared by every test in
// this package. Each TestEnv gets its own database inside it.
var dbHost string

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("connecting to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
	})
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	resource.Expire(600)

	dbHost = resource.GetHostPort("5432/tcp")

	if err := pool.Retry(func() error {
		db, err := database.Open(config.DB{
			User:       "postgres",
			Password:   "postgres",
			Host:       dbHost,
			Name:       "postgres",
			DisableTLS: true,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}); err != nil {
		log.Fatalf("waiting for postgres: %v", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Printf("purging postgres container: %v", err)
	}

	os.Exit(code)
}
