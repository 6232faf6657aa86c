package app

import (
	"github.com/sirupsen/logrus"

	"postauth/internal/config"
	"postauth/internal/database"
	"postauth/internal/repository"
	"postauth/internal/service"
)

func App(cfg *config.Config, log *logrus.Logger) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services, err := service.NewService(repo, cfg, log)
	if err != nil {
		_ = db.CloseDB()
		log.WithError(err).Fatal("failed to initialise services")
	}

	return db, repo, services
}
