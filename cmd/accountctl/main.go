package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"tipjar/internal/adapter/repo"
	"tipjar/internal/domain"
	"tipjar/internal/infra"
	"tipjar/internal/ledger"
	"tipjar/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	var (
		idFlag       string
		usernameFlag string
		goalFlag     int64
		clearGoal    bool
		tokenTTL     time.Duration
		issueToken   bool
	)

	flag.StringVar(&idFlag, "id", "", "account ID (UUID)")
	flag.StringVar(&usernameFlag, "username", "", "account username")
	flag.Int64Var(&goalFlag, "goal", 0, "donation goal in baht to set (0 keeps the current goal)")
	flag.BoolVar(&clearGoal, "clear-goal", false, "remove the donation goal")
	flag.BoolVar(&issueToken, "token", false, "print a session token for the account")
	flag.DurationVar(&tokenTTL, "ttl", 24*time.Hour, "session token lifetime")
	flag.Parse()

	accountID := strings.TrimSpace(idFlag)
	username := strings.TrimSpace(usernameFlag)
	if accountID == "" && username == "" {
		exitWithError(errors.New("either -id or -username must be provided"))
	}
	if goalFlag < 0 {
		exitWithError(errors.New("-goal must be positive"))
	}
	if clearGoal && goalFlag > 0 {
		exitWithError(errors.New("-goal and -clear-goal are mutually exclusive"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "accountctl").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	accounts := repo.NewAccountRepository(runner)
	svc := ledger.New(accounts, repo.NewDonationRepository(runner), ledger.WithLogger(logger))

	var acct *domain.Account
	if accountID != "" {
		acct, err = accounts.GetByID(ctx, accountID)
	} else {
		acct, err = accounts.GetByUsername(ctx, username)
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to load account: %w", err))
	}

	switch {
	case clearGoal:
		acct, err = svc.SetDonationGoal(ctx, acct.ID, nil)
	case goalFlag > 0:
		acct, err = svc.SetDonationGoal(ctx, acct.ID, &goalFlag)
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to update goal: %w", err))
	}

	fmt.Printf("Account %s (%s)\n", acct.ID, acct.Username)
	if acct.DonationGoal != nil {
		fmt.Printf("donation_goal=%d\n", *acct.DonationGoal)
	} else {
		fmt.Println("donation_goal=none")
	}

	stats, err := svc.ComputeCreatorStats(ctx, acct.ID)
	if err != nil {
		exitWithError(fmt.Errorf("failed to compute stats: %w", err))
	}
	fmt.Printf("lifetime_total=%d donors=%d this_month=%d pending=%d\n",
		stats.LifetimeTotal, stats.DistinctDonorCount, stats.CurrentPeriodTotal, stats.PendingCount)

	if issueToken {
		secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
		if secret == "" {
			exitWithError(errors.New("JWT_SECRET is required to issue a token"))
		}
		issuer := strings.TrimSpace(os.Getenv("JWT_ISSUER"))
		if issuer == "" {
			issuer = "tipjar"
		}
		token, err := middleware.SignJWT(secret, issuer, acct.ID, tokenTTL)
		if err != nil {
			exitWithError(fmt.Errorf("failed to sign token: %w", err))
		}
		fmt.Printf("token=%s\n", token)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
