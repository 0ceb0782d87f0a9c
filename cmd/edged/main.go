package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/STAR-173/prms-admin-gateway/internal/app"
	"github.com/STAR-173/prms-admin-gateway/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.RunEdge(cfg); err != nil {
		log.Fatal(err)
	}
}
