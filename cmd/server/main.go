package main

import (
	"flag"
	"log"

	"github.com/simp-lee/hrdesk/internal/app"
	"github.com/simp-lee/hrdesk/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	mock := flag.Bool("mock", false, "serve seeded in-memory data regardless of data.mock")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if *mock {
		cfg.Data.Mock = true
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
