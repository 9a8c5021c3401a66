// seed inserts a demo user and a batch of todos into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"todo-backend/internal/auth"
	"todo-backend/internal/infrastructure/postgres"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
	seedName     = "Seed User"
)

type todoSpec struct {
	title       string
	description string
	completed   bool
}

var todos = []todoSpec{
	{"Buy milk", "2% if they have it", false},
	{"Buy coffee beans", "medium roast, whole bean", false},
	{"Water the plants", "", true},
	{"Renew gym membership", "ask about the annual discount", false},
	{"Write weekly report", "due Friday noon", false},
	{"Fix bike brakes", "rear pads are worn", false},
	{"Call dentist", "reschedule the cleaning", true},
	{"Read pagination chapter", "offset vs cursor tradeoffs", false},
	{"Clean the fridge", "throw out leftovers", true},
	{"Plan weekend hike", "check the weather first", false},
	{"Pay electricity bill", "", true},
	{"Back up laptop", "external drive in the drawer", false},
	{"Pick up package", "locker code in email", false},
	{"Refill milk frother", "descale it too", false},
	{"Update resume", "add the metrics project", false},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)
	passwordHash, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs keep the same row)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, seedName, passwordHash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, spec := range todos {
		tag, err := pool.Exec(ctx, `
			INSERT INTO todos (owner_id, title, description, completed)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM todos WHERE owner_id = $1 AND title = $2
			)`,
			userID, spec.title, spec.description, spec.completed,
		)
		if err != nil {
			log.Fatalf("insert todo %q: %v", spec.title, err)
		}
		inserted += int(tag.RowsAffected())
	}

	fmt.Printf("seeded user %s (%s / %s), %d new todos\n", userID, seedEmail, seedPassword, inserted)
}
