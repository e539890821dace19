package main

import (
	"context"
	"fmt"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/handler"
	"github.com/lanaseq/lanaseq/internal/ldap"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/server"
	"github.com/lanaseq/lanaseq/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("lanaseq-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	var directory ldap.Directory
	if cfg.LDAP.Enabled {
		directory = ldap.NewDirectory(cfg.LDAP, log)
	}

	policies := security.NewPolicyRegistry()
	sessions := security.NewSessionStore()

	services, err := security.NewServices(storages, directory, cfg, policies, logSwitchUser(log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages, sessions, policies, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	servers.RunServer()
}

// logSwitchUser records every impersonation change for the audit trail.
func logSwitchUser(log *logger.Logger) security.SwitchListener {
	return func(from, to *security.Authentication) {
		log.Info().
			Int64("from", from.UserID).
			Int64("to", to.UserID).
			Msg("switched authentication")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
