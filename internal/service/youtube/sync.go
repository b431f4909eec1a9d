package youtube

import (
	"context"
	"strings"

	"github.com/stillwaters/ytcatalog/internal/config"
	"github.com/stillwaters/ytcatalog/internal/errors"
	"github.com/stillwaters/ytcatalog/internal/model"
	"github.com/stillwaters/ytcatalog/internal/repository"
)

// channelIDPrefix is the fixed prefix of every native YouTube channel ID.
// Input without it is treated as a handle and resolved first.
const channelIDPrefix = "UC"

// Service is interface for catalog synchronization operations
type Service interface {
	// SyncChannel reconciles the local catalog against the remote video
	// set of the given channel ID or handle. Safe to re-run: every pass
	// converges instead of duplicating.
	SyncChannel(ctx context.Context, rawChannelID string) (*model.SyncResult, error)

	// ListVideos retrieves stored videos ordered by published date descending
	ListVideos(ctx context.Context, limit, offset int) ([]*model.Video, error)

	// ListChannels retrieves stored channels with pagination
	ListChannels(ctx context.Context, limit, offset int) ([]*model.Channel, error)
}

// syncService implements Service
type syncService struct {
	client      Client
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	pageSize    int
	locks       *keyedMutex
}

// NewService creates a new catalog synchronization service. pageSize
// bounds how many remote videos one sync pass fetches; zero or negative
// falls back to the default.
func NewService(client Client, channelRepo repository.ChannelRepository, videoRepo repository.VideoRepository, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = config.DefaultSyncPageSize
	}
	return &syncService{
		client:      client,
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		pageSize:    pageSize,
		locks:       newKeyedMutex(),
	}
}

// SyncChannel runs one reconciliation pass for the given channel ID or handle
func (s *syncService) SyncChannel(ctx context.Context, rawChannelID string) (*model.SyncResult, error) {
	// Deployments without an API key construct the service without a
	// client; fail explicitly instead of relying on callers to gate
	if s.client == nil {
		return nil, errors.New(errors.CodeInternal, "video sync is not configured: missing YouTube API key")
	}
	if rawChannelID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}

	// Step 1: identifier normalization. Handles and anything that does
	// not look like a native channel ID go through search resolution.
	channelID := rawChannelID
	if strings.HasPrefix(rawChannelID, "@") || !strings.HasPrefix(rawChannelID, channelIDPrefix) {
		resolved, err := s.client.ResolveHandle(ctx, rawChannelID)
		if err != nil {
			return nil, err
		}
		if resolved == "" {
			return nil, errors.New(errors.CodeNotFound, "channel not found")
		}
		channelID = resolved
	}

	// Serialize passes per channel so concurrent callers cannot
	// interleave their upserts
	s.locks.Lock(channelID)
	defer s.locks.Unlock(channelID)

	// Step 2: ensure a local channel record exists
	channel, err := s.ensureChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	// Step 3: fetch the remote video set. No local writes have happened
	// for videos yet, so an upstream failure here fails the whole pass
	// cleanly.
	remoteVideos, err := s.client.ListChannelVideos(ctx, channelID, s.pageSize)
	if err != nil {
		return nil, err
	}

	// Step 4: per-video reconciliation. Sequential and individually
	// committed; an error aborts the remaining loop but keeps what is
	// already written. The next pass picks up where this one stopped.
	created, updated := 0, 0
	for _, info := range remoteVideos {
		video := NormalizeVideo(info, channel.ID)

		existing, err := s.videoRepo.GetByYouTubeID(ctx, info.ID)
		if err != nil && !errors.HasCode(err, errors.CodeNotFound) {
			return nil, errors.Wrap(err, errors.CodeOf(err), "sync aborted while reconciling video "+info.ID)
		}

		if existing == nil {
			if err := s.videoRepo.Create(ctx, video); err != nil {
				return nil, errors.Wrap(err, errors.CodeOf(err), "sync aborted while creating video "+info.ID)
			}
			created++
		} else {
			if _, err := s.videoRepo.UpdateByYouTubeID(ctx, info.ID, video); err != nil {
				return nil, errors.Wrap(err, errors.CodeOf(err), "sync aborted while updating video "+info.ID)
			}
			updated++
		}
	}

	// Step 5: stamp the channel. Failing here is reported but does not
	// undo the video writes above.
	if err := s.channelRepo.MarkSynced(ctx, channel.ID); err != nil {
		return nil, errors.Wrap(err, errors.CodeOf(err), "failed to mark channel synced")
	}

	return &model.SyncResult{
		Channel:      channel,
		Created:      created,
		Updated:      updated,
		TotalFetched: len(remoteVideos),
	}, nil
}

// ensureChannel looks up the channel locally, creating it from remote
// metadata on first sight
func (s *syncService) ensureChannel(ctx context.Context, channelID string) (*model.Channel, error) {
	channel, err := s.channelRepo.GetByYouTubeID(ctx, channelID)
	if err == nil {
		return channel, nil
	}
	if !errors.HasCode(err, errors.CodeNotFound) {
		return nil, err
	}

	info, err := s.client.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, errors.New(errors.CodeNotFound, "channel not found")
	}

	channel = &model.Channel{
		YouTubeID:       info.ID,
		Name:            info.Title,
		Description:     info.Description,
		ThumbnailURL:    info.ThumbnailURL,
		SubscriberCount: info.SubscriberCount,
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		// Lost a creation race with another process; the row exists now,
		// so re-read instead of failing the pass
		if errors.HasCode(err, errors.CodeConflict) {
			return s.channelRepo.GetByYouTubeID(ctx, channelID)
		}
		return nil, err
	}

	return channel, nil
}

// ListVideos retrieves stored videos ordered by published date descending
func (s *syncService) ListVideos(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.videoRepo.ListByPublishedDesc(ctx, limit, offset)
}

// ListChannels retrieves stored channels with pagination
func (s *syncService) ListChannels(ctx context.Context, limit, offset int) ([]*model.Channel, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.channelRepo.List(ctx, limit, offset)
}
