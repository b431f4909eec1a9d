package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stillwaters/ytcatalog/internal/errors"
	"github.com/stillwaters/ytcatalog/internal/model"
)

var videoColumnNames = []string{"id", "youtube_id", "channel_id", "title", "description", "thumbnail_url", "duration", "published_at", "view_count", "like_count", "tags", "created_at", "updated_at"}

func testVideo() *model.Video {
	return &model.Video{
		YouTubeID:    "dQw4w9WgXcQ",
		ChannelID:    7,
		Title:        "Morning Meditation",
		Description:  "A guided session",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		Duration:     "12:34",
		PublishedAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		ViewCount:    1200,
		LikeCount:    80,
		Tags:         []string{"meditation", "calm"},
	}
}

func TestVideoRepository_Create(t *testing.T) {
	tests := []struct {
		name     string
		video    *model.Video
		setup    func(mock pgxmock.PgxPoolIface)
		wantErr  bool
		wantCode string
	}{
		{
			name:  "successful creation",
			video: testVideo(),
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(int64(42), time.Now(), time.Now())
				mock.ExpectQuery("INSERT INTO videos").
					WithArgs("dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), int64(1200), int64(80),
						[]string{"meditation", "calm"}).
					WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name:  "duplicate youtube_id yields conflict",
			video: testVideo(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO videos").
					WithArgs("dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), int64(1200), int64(80),
						[]string{"meditation", "calm"}).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "videos_youtube_id_key"})
			},
			wantErr:  true,
			wantCode: apperrors.CodeConflict,
		},
		{
			name:  "missing channel yields dependency error",
			video: testVideo(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO videos").
					WithArgs("dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), int64(1200), int64(80),
						[]string{"meditation", "calm"}).
					WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "videos_channel_id_fkey"})
			},
			wantErr:  true,
			wantCode: apperrors.CodeDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewVideoRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err = repo.Create(ctx, tt.video)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != "" {
					assert.True(t, apperrors.HasCode(err, tt.wantCode))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), tt.video.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestVideoRepository_GetByYouTubeID(t *testing.T) {
	published := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		youtubeID string
		setup     func(mock pgxmock.PgxPoolIface)
		wantErr   bool
	}{
		{
			name:      "video found",
			youtubeID: "dQw4w9WgXcQ",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(videoColumnNames).
					AddRow(int64(42), "dQw4w9WgXcQ", int64(7), "Morning Meditation", "", "", "12:34",
						published, int64(1200), int64(80), []string{"meditation"}, published, published)
				mock.ExpectQuery("SELECT (.+) FROM videos WHERE youtube_id").
					WithArgs("dQw4w9WgXcQ").
					WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name:      "video not found",
			youtubeID: "missing",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM videos WHERE youtube_id").
					WithArgs("missing").
					WillReturnRows(pgxmock.NewRows(videoColumnNames))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewVideoRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.GetByYouTubeID(ctx, tt.youtubeID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "dQw4w9WgXcQ", got.YouTubeID)
				assert.Equal(t, int64(7), got.ChannelID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestVideoRepository_UpdateByYouTubeID(t *testing.T) {
	published := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name: "overwrites all mutable fields",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(videoColumnNames).
					AddRow(int64(42), "dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						published, int64(1200), int64(80), []string{"meditation", "calm"}, published, time.Now())
				mock.ExpectQuery("UPDATE videos SET").
					WithArgs("dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						published, int64(1200), int64(80), []string{"meditation", "calm"}).
					WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name: "missing row yields not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE videos SET").
					WithArgs("dQw4w9WgXcQ", int64(7), "Morning Meditation", "A guided session",
						"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "12:34",
						published, int64(1200), int64(80), []string{"meditation", "calm"}).
					WillReturnRows(pgxmock.NewRows(videoColumnNames))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewVideoRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.UpdateByYouTubeID(ctx, "dQw4w9WgXcQ", testVideo())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, int64(42), got.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestVideoRepository_ListByPublishedDesc(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	newer := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(videoColumnNames).
		AddRow(int64(2), "video2", int64(7), "Second", "", "", "5:00", newer, int64(0), int64(0), []string{}, newer, newer).
		AddRow(int64(1), "video1", int64(7), "First", "", "", "5:00", older, int64(0), int64(0), []string{}, older, older)
	mock.ExpectQuery("SELECT (.+) FROM videos ORDER BY published_at DESC").
		WithArgs(50, 0).
		WillReturnRows(rows)

	repo := NewVideoRepository(mock)

	videos, err := repo.ListByPublishedDesc(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "video2", videos[0].YouTubeID)
	assert.Equal(t, "video1", videos[1].YouTubeID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
