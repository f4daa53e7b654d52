package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jo-hoe/colorstash/internal/backend/database"
	"github.com/jo-hoe/colorstash/internal/backend/documentstore"
	"github.com/jo-hoe/colorstash/internal/backend/imageprocessing"
	"github.com/jo-hoe/colorstash/internal/backend/objectstore"
	"github.com/jo-hoe/colorstash/internal/common"
)

// ObjectStorage is the part of the object store the swatch flow needs.
type ObjectStorage interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	Presign(ctx context.Context, name string, expires time.Duration) (string, error)
}

// CoreService owns the three backend handles. Each handle is safe for
// concurrent use and pools its own connections, so requests share them
// without further locking.
type CoreService struct {
	config          *ServiceConfig
	storage         ObjectStorage
	databaseService database.DatabaseService
	documentService documentstore.DocumentService
	keys            *common.KeyGenerator
}

type ColorCounts struct {
	Relational int `json:"relational"`
	Document   int `json:"document"`
}

// NewCoreService connects every backend. Any failure here is a configuration
// error and the caller is expected to abort startup.
func NewCoreService(ctx context.Context, config *ServiceConfig) (*CoreService, error) {
	storage, err := objectstore.New(config.Storage)
	if err != nil {
		return nil, common.E(common.KindConfig, "init storage", err)
	}
	if err := storage.CheckBucket(ctx); err != nil {
		return nil, common.E(common.KindConfig, "init storage", err)
	}
	slog.Info("object storage initialized", "bucket", config.Storage.BucketName)

	databaseService, err := database.NewDatabase(ctx, config.Database)
	if err != nil {
		return nil, common.E(common.KindConfig, "init database", fmt.Errorf("failed to initialize database: %w", err))
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)

	documentService, err := documentstore.NewDocumentStore(ctx, config.DocumentStore)
	if err != nil {
		_ = databaseService.Close()
		return nil, common.E(common.KindConfig, "init document store", fmt.Errorf("failed to initialize document store: %w", err))
	}

	return NewCoreServiceWithBackends(config, storage, databaseService, documentService), nil
}

func NewCoreServiceWithBackends(config *ServiceConfig, storage ObjectStorage, databaseService database.DatabaseService, documentService documentstore.DocumentService) *CoreService {
	return &CoreService{
		config:          config,
		storage:         storage,
		databaseService: databaseService,
		documentService: documentService,
		keys:            common.NewKeyGenerator(),
	}
}

// CreateSwatch renders the color, uploads it, presigns a link, then records
// the color in both stores. Steps run in that order and completed steps are
// not undone when a later one fails.
func (service *CoreService) CreateSwatch(ctx context.Context, color common.Color) (string, error) {
	if timeout := service.config.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	image, err := observe(stepRender, func() ([]byte, error) {
		return imageprocessing.NewSolidPNG(service.config.ImgWidth, service.config.ImgHeight, color)
	})
	if err != nil {
		return "", common.E(common.KindInternal, "render image", err)
	}

	filename := service.keys.Next("png")

	_, err = observe(stepUpload, func() (struct{}, error) {
		return struct{}{}, service.storage.Upload(ctx, filename, image, imageprocessing.MimePNG)
	})
	if err != nil {
		return "", common.E(common.KindStorage, "upload image", err)
	}

	url, err := observe(stepPresign, func() (string, error) {
		return service.storage.Presign(ctx, filename, service.config.Storage.Expiration())
	})
	if err != nil {
		return "", common.E(common.KindStorage, "presign image", err)
	}

	_, err = observe(stepRelational, func() (struct{}, error) {
		return struct{}{}, service.databaseService.InsertColor(ctx, color)
	})
	if err != nil {
		return "", common.E(common.KindDatabase, "insert relational", err)
	}

	_, err = observe(stepDocument, func() (struct{}, error) {
		return struct{}{}, service.documentService.InsertColor(ctx, color)
	})
	if err != nil {
		return "", common.E(common.KindDatabase, "insert document", err)
	}

	slog.Info("stored swatch", "filename", filename, "color", color.String())
	return url, nil
}

// CountColor queries both stores concurrently.
func (service *CoreService) CountColor(ctx context.Context, color common.Color) (ColorCounts, error) {
	var counts ColorCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := service.databaseService.CountByColor(gctx, color)
		if err != nil {
			return common.E(common.KindDatabase, "count relational", err)
		}
		counts.Relational = n
		return nil
	})
	g.Go(func() error {
		n, err := service.documentService.CountByColor(gctx, color)
		if err != nil {
			return common.E(common.KindDatabase, "count document", err)
		}
		counts.Document = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return ColorCounts{}, err
	}
	return counts, nil
}

func (service *CoreService) Close() error {
	return errors.Join(service.databaseService.Close(), service.documentService.Close())
}
