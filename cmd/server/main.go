package main

import (
	"context"
	"log"
	"net/http"

	"empdir/internal/platform/config"
	"empdir/internal/server"
)

func main() {
	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	var store server.Store
	if cfg.DatabaseURL != "" {
		pool, err := server.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()

		pg := server.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
		store = pg
	} else {
		log.Print("DATABASE_URL not set, using the in-memory store")
		store = server.NewMemStore()
	}

	opts := server.Options{JWTSecret: cfg.JWTSecret, AdminEmail: cfg.AdminEmail}
	if cfg.JWTSecret != "" {
		hash, err := server.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("could not hash admin password: %v", err)
		}
		opts.AdminPwdHash = hash
	}

	router := server.NewRouter(store, opts)

	log.Printf("employee directory server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
