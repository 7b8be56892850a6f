package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tipjar/internal/infra"
	"tipjar/internal/infra/migrator"
	"tipjar/migrations"
)

func main() {
	_ = godotenv.Load()

	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall time limit for applying migrations")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(fmt.Errorf("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger := infra.NewLogger("cli").With().Str("cmd", "migrate").Logger()
	applied, err := migrator.New(db, logger).Up(ctx, migrations.FS)
	if err != nil {
		exitWithError(err)
	}
	if len(applied) == 0 {
		fmt.Println("schema is up to date")
		return
	}
	fmt.Printf("applied %d migration(s): %s\n", len(applied), strings.Join(applied, ", "))
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
