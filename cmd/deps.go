package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillwaters/ytcatalog/internal/config"
	"github.com/stillwaters/ytcatalog/internal/repository"
	"github.com/stillwaters/ytcatalog/internal/service/youtube"
)

// newCatalogService wires config, database pool, repositories and the
// YouTube client into a ready sync service. The returned pool must be
// closed by the caller.
func newCatalogService(ctx context.Context) (youtube.Service, *pgxpool.Pool, *config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	pool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var client youtube.Client
	if cfg.SyncEnabled() {
		client, err = youtube.NewClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("failed to create YouTube client: %w", err)
		}
	}

	channelRepo := repository.NewChannelRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	svc := youtube.NewService(client, channelRepo, videoRepo, cfg.SyncPageSize)

	return svc, pool, cfg, nil
}
