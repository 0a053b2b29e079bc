package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"quiz-client/internal/backend"
	"quiz-client/internal/cli"
	"quiz-client/internal/config"
	"quiz-client/internal/credentials"
	"quiz-client/internal/localstore"
	"quiz-client/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	server := flag.String("server", cfg.APIBaseURL, "quiz backend base URL")
	verbose := flag.Bool("v", false, "verbose request logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	creds := credentials.NewFileStore(cfg.TokenFile)
	sess := session.New(creds)

	client := backend.NewClient(*server, creds,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		backend.WithLogger(logger),
		backend.WithUnauthorizedHook(func() {
			sess.SignedOut()
			fmt.Fprintln(os.Stderr, "session expired, please sign in again")
		}),
	)

	ctx := context.Background()
	if err := sess.Restore(ctx, client); err != nil {
		logger.Warn("could not restore session", "error", err)
	}

	cache, err := localstore.Open(cfg.CacheDB, logger)
	if err != nil {
		logger.Warn("local result cache disabled", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	if err := cli.Run(ctx, os.Stdin, os.Stdout, client, sess, cache); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
