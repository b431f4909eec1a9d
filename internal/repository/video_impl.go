package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/stillwaters/ytcatalog/internal/errors"
	"github.com/stillwaters/ytcatalog/internal/model"
)

const videoColumns = "id, youtube_id, channel_id, title, description, thumbnail_url, duration, published_at, view_count, like_count, tags, created_at, updated_at"

// videoRepository implements VideoRepository using PostgreSQL
type videoRepository struct {
	pool Pool
}

// NewVideoRepository creates a new instance of VideoRepository
func NewVideoRepository(pool Pool) VideoRepository {
	return &videoRepository{
		pool: pool,
	}
}

// Create inserts a new video record
func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	sql := `INSERT INTO videos (youtube_id, channel_id, title, description, thumbnail_url, duration, published_at, view_count, like_count, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	row := r.pool.QueryRow(ctx, sql,
		video.YouTubeID, video.ChannelID, video.Title, video.Description, video.ThumbnailURL,
		video.Duration, video.PublishedAt, video.ViewCount, video.LikeCount, video.Tags)

	if err := row.Scan(&video.ID, &video.CreatedAt, &video.UpdatedAt); err != nil {
		return handlePostgreSQLError(err, "failed to create video")
	}
	return nil
}

// GetByYouTubeID retrieves a video by its YouTube video ID
func (r *videoRepository) GetByYouTubeID(ctx context.Context, youtubeID string) (*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE youtube_id = $1"
	row := r.pool.QueryRow(ctx, sql, youtubeID)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get video")
	}

	return video, nil
}

// UpdateByYouTubeID overwrites all mutable fields of the matching video
func (r *videoRepository) UpdateByYouTubeID(ctx context.Context, youtubeID string, video *model.Video) (*model.Video, error) {
	sql := `UPDATE videos SET channel_id = $2, title = $3, description = $4, thumbnail_url = $5,
		duration = $6, published_at = $7, view_count = $8, like_count = $9, tags = $10, updated_at = now()
		WHERE youtube_id = $1 RETURNING ` + videoColumns
	row := r.pool.QueryRow(ctx, sql,
		youtubeID, video.ChannelID, video.Title, video.Description, video.ThumbnailURL,
		video.Duration, video.PublishedAt, video.ViewCount, video.LikeCount, video.Tags)

	updated, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handlePostgreSQLError(err, "failed to update video")
	}

	return updated, nil
}

// ListByPublishedDesc retrieves videos ordered by published_at descending
func (r *videoRepository) ListByPublishedDesc(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos ORDER BY published_at DESC LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to list videos")
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ListByChannel retrieves videos for one channel with pagination
func (r *videoRepository) ListByChannel(ctx context.Context, channelID int64, limit, offset int) ([]*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE channel_id = $1 ORDER BY published_at DESC LIMIT $2 OFFSET $3"
	rows, err := r.pool.Query(ctx, sql, channelID, limit, offset)
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to list videos by channel")
	}
	defer rows.Close()

	return collectVideos(rows)
}

// scanVideo scans one video row in videoColumns order
func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	err := row.Scan(&video.ID, &video.YouTubeID, &video.ChannelID, &video.Title, &video.Description,
		&video.ThumbnailURL, &video.Duration, &video.PublishedAt, &video.ViewCount, &video.LikeCount,
		&video.Tags, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func collectVideos(rows pgx.Rows) ([]*model.Video, error) {
	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, handlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}
