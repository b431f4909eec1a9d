package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/stillwaters/ytcatalog/internal/errors"
	"github.com/stillwaters/ytcatalog/internal/model"
)

// channelRepository implements ChannelRepository using PostgreSQL
type channelRepository struct {
	pool Pool
}

// NewChannelRepository creates a new instance of ChannelRepository
func NewChannelRepository(pool Pool) ChannelRepository {
	return &channelRepository{
		pool: pool,
	}
}

// Create inserts a new channel record
func (r *channelRepository) Create(ctx context.Context, channel *model.Channel) error {
	sql := `INSERT INTO channels (youtube_id, name, description, thumbnail_url, subscriber_count)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	row := r.pool.QueryRow(ctx, sql,
		channel.YouTubeID, channel.Name, channel.Description, channel.ThumbnailURL, channel.SubscriberCount)

	if err := row.Scan(&channel.ID, &channel.CreatedAt); err != nil {
		return handlePostgreSQLError(err, "failed to create channel")
	}
	return nil
}

// GetByYouTubeID retrieves a channel by its YouTube channel ID
func (r *channelRepository) GetByYouTubeID(ctx context.Context, youtubeID string) (*model.Channel, error) {
	sql := `SELECT id, youtube_id, name, description, thumbnail_url, subscriber_count, last_synced_at, created_at
		FROM channels WHERE youtube_id = $1`
	row := r.pool.QueryRow(ctx, sql, youtubeID)

	var channel model.Channel
	err := row.Scan(&channel.ID, &channel.YouTubeID, &channel.Name, &channel.Description,
		&channel.ThumbnailURL, &channel.SubscriberCount, &channel.LastSyncedAt, &channel.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get channel")
	}

	return &channel, nil
}

// MarkSynced stamps the channel's last_synced_at to now
func (r *channelRepository) MarkSynced(ctx context.Context, id int64) error {
	sql := "UPDATE channels SET last_synced_at = now() WHERE id = $1"
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return handlePostgreSQLError(err, "failed to mark channel synced")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	return nil
}

// List retrieves channels with pagination
func (r *channelRepository) List(ctx context.Context, limit, offset int) ([]*model.Channel, error) {
	sql := `SELECT id, youtube_id, name, description, thumbnail_url, subscriber_count, last_synced_at, created_at
		FROM channels ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to list channels")
	}
	defer rows.Close()

	channels := []*model.Channel{}
	for rows.Next() {
		var channel model.Channel
		err := rows.Scan(&channel.ID, &channel.YouTubeID, &channel.Name, &channel.Description,
			&channel.ThumbnailURL, &channel.SubscriberCount, &channel.LastSyncedAt, &channel.CreatedAt)
		if err != nil {
			return nil, handlePostgreSQLError(err, "failed to scan channel row")
		}
		channels = append(channels, &channel)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "failed to iterate channel rows")
	}

	return channels, nil
}
