package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/STAR-173/prms-admin-gateway/domain"
	"github.com/STAR-173/prms-admin-gateway/internal/config"
	"github.com/STAR-173/prms-admin-gateway/internal/gateway"
	"github.com/STAR-173/prms-admin-gateway/internal/guard"
	"github.com/STAR-173/prms-admin-gateway/internal/session"
	"github.com/STAR-173/prms-admin-gateway/internal/shell"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	// Land on the dashboard; the guard bounces anonymous operators to login.
	nav := shell.NewRouteNavigator(domain.RouteDashboard)
	invalidator := gateway.NewInvalidator(store, nav)
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout, store, invalidator)
	g := guard.New(store, nav)

	sh := shell.New(gw, store, nav, g, os.Stdin, os.Stdout)
	if err := sh.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func buildStore(cfg *config.Config) (domain.SessionStore, error) {
	switch cfg.SessionStore {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return session.NewRedisStore(client, "", 0), nil
	default:
		return session.NewFileStore(cfg.SessionFile)
	}
}
