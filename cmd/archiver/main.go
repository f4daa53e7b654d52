package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jo-hoe/colorstash/internal/archiver"
	"github.com/jo-hoe/colorstash/internal/backend/objectstore"
	"github.com/jo-hoe/colorstash/internal/common"
)

func main() {
	config, err := archiver.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := common.NewLogger(config.Log())
	if err != nil {
		slog.Error("failed to configure logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	storage, err := objectstore.New(config.Storage())
	if err != nil {
		slog.Error("failed to create object storage client", "error", err)
		os.Exit(1)
	}

	lambda.Start(archiver.NewHandler(storage).Handle)
}
