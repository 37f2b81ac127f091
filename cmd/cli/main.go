package main

import (
	"context"
	"log"
	"os"

	"github.com/manuelmariscal/coursera/internal/buildinfo"
	"github.com/manuelmariscal/coursera/internal/client/cli"
	"github.com/manuelmariscal/coursera/internal/client/client"
	"github.com/manuelmariscal/coursera/internal/client/config"
	"github.com/manuelmariscal/coursera/internal/client/diagnostics"
	"github.com/manuelmariscal/coursera/internal/client/photos"
	"github.com/manuelmariscal/coursera/internal/client/repositories"
	"github.com/manuelmariscal/coursera/internal/client/services"
	"github.com/manuelmariscal/coursera/internal/client/session"
	"github.com/manuelmariscal/coursera/internal/filex"
	"github.com/manuelmariscal/coursera/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogBackend, os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	dsn, err := filex.StatePath(cfg.StateDir, cfg.StateDB)
	if err != nil {
		return err
	}
	repos, err := repositories.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer repos.Close()

	store, writer := session.New()
	api := client.NewRESTClient(
		client.WithBaseURL(cfg.APIBaseURL),
		client.WithUserAgent(cfg.UserAgent),
		client.WithCredentials(store),
		client.WithLogger(logger),
	)

	resolver := photos.NewResolver()
	resolver.Register("s3", photos.NewS3Source(photos.S3Options{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	}))

	app := cli.NewApp(cli.Deps{
		Config:  cfg,
		API:     api,
		Auth:    services.NewAuthService(api, repos.Metadata, store, writer, logger),
		Records: services.NewRecordsService(api, logger),
		Diag:    diagnostics.New(api, logger),
		Photos:  resolver,
		Logger:  logger,
		In:      os.Stdin,
		Out:     os.Stdout,
	})
	return app.Run(ctx)
}
