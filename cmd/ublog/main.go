package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ublog-dev/ublog/db"
	"github.com/ublog-dev/ublog/internal/auth"
	"github.com/ublog-dev/ublog/internal/config"
	"github.com/ublog-dev/ublog/internal/dsn"
	"github.com/ublog-dev/ublog/internal/repository"
	"github.com/ublog-dev/ublog/internal/router"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := auth.InitSessionSecret(); err != nil {
		log.Fatalf("Error initializing session secret: %v", err)
	}

	conn, err := db.ConnectDatabase(dsn.FromEnv())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := db.MigrateDatabase(conn); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	r := router.NewRouter(repository.New(conn), cfg)

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	log.Infof("serving on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
