package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"tipjar/internal/domain"
	"tipjar/internal/infra"
	"tipjar/internal/infra/credentials"
)

func main() {
	_ = godotenv.Load()

	var (
		secretFlag string
		methodFlag string
	)
	flag.StringVar(&secretFlag, "secret", "", "shared secret the gateway sends in X-Gateway-Secret (fallbacks to GATEWAY_SECRET)")
	flag.StringVar(&methodFlag, "method", string(domain.PaymentMethodPromptPay), "payment method to configure (promptpay, truemoney or linepay)")
	flag.Parse()

	method := domain.PaymentMethod(strings.TrimSpace(strings.ToLower(methodFlag)))
	if !method.Valid() {
		fmt.Fprintf(os.Stderr, "unsupported payment method %q\n", methodFlag)
		os.Exit(1)
	}

	secret := strings.TrimSpace(secretFlag)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("GATEWAY_SECRET"))
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "gateway secret is required via -secret or GATEWAY_SECRET")
		os.Exit(1)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "gatewaykey").Str("payment_method", string(method)).Logger()
	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))

	ctxExec, cancelExec := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelExec()
	if err := store.SetGatewaySecret(ctxExec, method, secret); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist %s gateway secret: %v\n", method, err)
		os.Exit(1)
	}

	fmt.Printf("%s gateway secret stored successfully\n", method)
}
