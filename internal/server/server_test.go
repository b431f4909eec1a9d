package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stillwaters/ytcatalog/internal/errors"
	"github.com/stillwaters/ytcatalog/internal/model"
)

// mockService is a mock implementation of youtube.Service for testing
type mockService struct {
	mock.Mock
}

func (m *mockService) SyncChannel(ctx context.Context, rawChannelID string) (*model.SyncResult, error) {
	args := m.Called(ctx, rawChannelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SyncResult), args.Error(1)
}

func (m *mockService) ListVideos(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

func (m *mockService) ListChannels(ctx context.Context, limit, offset int) ([]*model.Channel, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Channel), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&strings.Builder{})
	return logger
}

func TestHandleSyncVideos(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		syncEnabled bool
		setup       func(svc *mockService)
		wantStatus  int
	}{
		{
			name:        "successful sync",
			body:        `{"channelId": "UC123456789"}`,
			syncEnabled: true,
			setup: func(svc *mockService) {
				svc.On("SyncChannel", mock.Anything, "UC123456789").Return(&model.SyncResult{
					Channel:      &model.Channel{ID: 7, YouTubeID: "UC123456789"},
					Created:      3,
					Updated:      2,
					TotalFetched: 5,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing channel id",
			body:        `{}`,
			syncEnabled: true,
			setup:       func(svc *mockService) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "malformed body",
			body:        `{not json`,
			syncEnabled: true,
			setup:       func(svc *mockService) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "channel not found",
			body:        `{"channelId": "@doesnotexist"}`,
			syncEnabled: true,
			setup: func(svc *mockService) {
				svc.On("SyncChannel", mock.Anything, "@doesnotexist").
					Return(nil, apperrors.New(apperrors.CodeNotFound, "channel not found"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:        "upstream failure",
			body:        `{"channelId": "UC123456789"}`,
			syncEnabled: true,
			setup: func(svc *mockService) {
				svc.On("SyncChannel", mock.Anything, "UC123456789").
					Return(nil, apperrors.New(apperrors.CodeUpstream, "failed to list playlist items"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:        "sync disabled",
			body:        `{"channelId": "UC123456789"}`,
			syncEnabled: false,
			setup:       func(svc *mockService) {},
			wantStatus:  http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setup(svc)

			srv := New(svc, tt.syncEnabled, quietLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/videos/sync", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

			if tt.wantStatus == http.StatusOK {
				var result model.SyncResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, 3, result.Created)
				assert.Equal(t, 2, result.Updated)
				assert.Equal(t, 5, result.TotalFetched)
			} else {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestHandleListVideos(t *testing.T) {
	svc := new(mockService)
	svc.On("ListVideos", mock.Anything, 25, 5).Return([]*model.Video{
		{ID: 1, YouTubeID: "video1", Title: "First"},
	}, nil)

	srv := New(svc, true, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/videos?limit=25&offset=5", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var videos []*model.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &videos))
	require.Len(t, videos, 1)
	assert.Equal(t, "video1", videos[0].YouTubeID)
}

func TestHandleListVideos_DefaultPagination(t *testing.T) {
	svc := new(mockService)
	svc.On("ListVideos", mock.Anything, 50, 0).Return([]*model.Video{}, nil)

	srv := New(svc, true, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/videos?limit=bogus", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertCalled(t, "ListVideos", mock.Anything, 50, 0)
}

func TestHandleListChannels(t *testing.T) {
	svc := new(mockService)
	svc.On("ListChannels", mock.Anything, 50, 0).Return([]*model.Channel{
		{ID: 7, YouTubeID: "UC123456789", Name: "Stillwaters"},
	}, nil)

	srv := New(svc, true, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var channels []*model.Channel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &channels))
	require.Len(t, channels, 1)
	assert.Equal(t, "Stillwaters", channels[0].Name)
}

func TestErrorMessagesStayGeneric(t *testing.T) {
	svc := new(mockService)
	svc.On("ListVideos", mock.Anything, 50, 0).
		Return(nil, apperrors.New(apperrors.CodeInternal, "pgx: connection refused host=10.0.0.3"))

	srv := New(svc, true, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details must not leak into the response body
	assert.NotContains(t, rec.Body.String(), "pgx")
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
