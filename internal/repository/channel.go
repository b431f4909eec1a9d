package repository

import (
	"context"

	"github.com/stillwaters/ytcatalog/internal/model"
)

// ChannelRepository defines operations for Channel persistence
type ChannelRepository interface {
	// Create inserts a new channel record and fills in its generated
	// row ID and creation timestamp
	Create(ctx context.Context, channel *model.Channel) error

	// GetByYouTubeID retrieves a channel by its YouTube channel ID
	GetByYouTubeID(ctx context.Context, youtubeID string) (*model.Channel, error)

	// MarkSynced stamps the channel's last_synced_at to now
	MarkSynced(ctx context.Context, id int64) error

	// List retrieves channels with pagination
	List(ctx context.Context, limit, offset int) ([]*model.Channel, error)
}
