package repository

import (
	"context"

	"github.com/stillwaters/ytcatalog/internal/model"
)

// VideoRepository defines operations for Video persistence.
// The youtube_id column is unique across the whole table; it is the key
// every sync pass reconciles against.
type VideoRepository interface {
	// Create inserts a new video record and fills in its generated
	// row ID and timestamps
	Create(ctx context.Context, video *model.Video) error

	// GetByYouTubeID retrieves a video by its YouTube video ID
	GetByYouTubeID(ctx context.Context, youtubeID string) (*model.Video, error)

	// UpdateByYouTubeID overwrites all mutable fields of the video with
	// the given YouTube ID and stamps updated_at
	UpdateByYouTubeID(ctx context.Context, youtubeID string, video *model.Video) (*model.Video, error)

	// ListByPublishedDesc retrieves videos ordered by published_at descending
	ListByPublishedDesc(ctx context.Context, limit, offset int) ([]*model.Video, error)

	// ListByChannel retrieves videos for one channel with pagination
	ListByChannel(ctx context.Context, channelID int64, limit, offset int) ([]*model.Video, error)
}
