package youtube

import (
	"context"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/stillwaters/ytcatalog/internal/errors"
)

// apiPageSize is the provider's hard cap of 50 for both playlistItems.list
// pages and the number of IDs one videos.list call accepts
const apiPageSize = 50

// ChannelInfo is the provider's channel metadata snapshot
type ChannelInfo struct {
	ID              string
	Title           string
	Description     string
	ThumbnailURL    string
	SubscriberCount int64
}

// VideoInfo is one provider video item with raw (unnormalized) fields
type VideoInfo struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  string // RFC3339 string as returned by the provider
	Duration     string // ISO-8601 period, e.g. "PT1H2M3S"
	ViewCount    int64
	LikeCount    int64
	Tags         []string
}

// Client is interface for YouTube Data API operations.
// Implementations do not retry; retry policy belongs to the caller.
type Client interface {
	// ResolveHandle resolves a channel handle (with or without the "@"
	// prefix) to a channel ID. Returns "" when nothing matches.
	ResolveHandle(ctx context.Context, handle string) (string, error)

	// GetChannelInfo fetches snippet and statistics for one channel ID.
	// Returns nil when the provider reports no matching channel.
	GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error)

	// ListChannelVideos fetches up to maxResults videos for a channel via
	// its uploads playlist. Any upstream failure aborts the whole call.
	ListChannelVideos(ctx context.Context, channelID string, maxResults int) ([]VideoInfo, error)
}

// apiClient implements Client using the YouTube Data API v3
type apiClient struct {
	service *ytapi.Service
	limiter *rate.Limiter
}

// NewClient creates a new YouTube Data API client. The API key is
// injected here and never read from ambient state.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "YouTube API key is required")
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "failed to create YouTube service")
	}

	return &apiClient{
		service: service,
		// Keeps one sync pass well under the daily quota burn rate
		limiter: rate.NewLimiter(rate.Limit(8), 8),
	}, nil
}

// ResolveHandle resolves a channel handle to a channel ID via search
func (c *apiClient) ResolveHandle(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimPrefix(handle, "@")

	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, errors.CodeUpstream, "rate limiter interrupted")
	}

	resp, err := c.service.Search.List([]string{"id"}).
		Q(handle).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeUpstream, "failed to search channel by handle")
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil {
		return "", nil
	}

	return resp.Items[0].Id.ChannelId, nil
}

// GetChannelInfo fetches snippet and statistics for one channel ID
func (c *apiClient) GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "rate limiter interrupted")
	}

	resp, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "failed to fetch channel info")
	}

	// Zero items means "not found", not an error
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	info := &ChannelInfo{ID: item.Id}

	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.Description = item.Snippet.Description
		info.ThumbnailURL = pickThumbnail(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		info.SubscriberCount = int64(item.Statistics.SubscriberCount)
	}

	return info, nil
}

// ListChannelVideos fetches up to maxResults videos for a channel.
// Three provider round trips: uploads playlist ID, playlist items, then
// one batch videos.list for full snippet/contentDetails/statistics.
func (c *apiClient) ListChannelVideos(ctx context.Context, channelID string, maxResults int) ([]VideoInfo, error) {
	uploadsID, err := c.getUploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if uploadsID == "" {
		return []VideoInfo{}, nil
	}

	videoIDs, err := c.collectPlaylistVideoIDs(ctx, uploadsID, maxResults)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return []VideoInfo{}, nil
	}

	return c.fetchVideoDetails(ctx, videoIDs)
}

// getUploadsPlaylistID resolves the channel's uploads playlist ID
func (c *apiClient) getUploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, errors.CodeUpstream, "rate limiter interrupted")
	}

	resp, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeUpstream, "failed to resolve uploads playlist")
	}

	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
		resp.Items[0].ContentDetails.RelatedPlaylists == nil {
		return "", nil
	}

	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// collectPlaylistVideoIDs pages through the uploads playlist collecting
// video IDs up to maxResults
func (c *apiClient) collectPlaylistVideoIDs(ctx context.Context, playlistID string, maxResults int) ([]string, error) {
	var videoIDs []string
	pageToken := ""

	for {
		remaining := maxResults - len(videoIDs)
		if remaining <= 0 {
			break
		}
		pageSize := int64(apiPageSize)
		if int64(remaining) < pageSize {
			pageSize = int64(remaining)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CodeUpstream, "rate limiter interrupted")
		}

		resp, err := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUpstream, "failed to list playlist items")
		}

		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videoIDs, nil
}

// fetchVideoDetails batch-fetches full metadata for the collected IDs,
// splitting into provider-sized batches when more than 50 were collected
func (c *apiClient) fetchVideoDetails(ctx context.Context, videoIDs []string) ([]VideoInfo, error) {
	videos := make([]VideoInfo, 0, len(videoIDs))

	for _, batch := range chunkIDs(videoIDs, apiPageSize) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CodeUpstream, "rate limiter interrupted")
		}

		resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(batch...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUpstream, "failed to fetch video details")
		}

		for _, item := range resp.Items {
			videos = append(videos, videoInfoFromItem(item))
		}
	}

	return videos, nil
}

// chunkIDs splits ids into batches of at most size, preserving order
func chunkIDs(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}

// videoInfoFromItem maps one provider video item to VideoInfo
func videoInfoFromItem(item *ytapi.Video) VideoInfo {
	info := VideoInfo{ID: item.Id}

	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.Description = item.Snippet.Description
		info.ThumbnailURL = pickThumbnail(item.Snippet.Thumbnails)
		info.PublishedAt = item.Snippet.PublishedAt
		info.Tags = item.Snippet.Tags
	}
	if item.ContentDetails != nil {
		info.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		info.ViewCount = int64(item.Statistics.ViewCount)
		info.LikeCount = int64(item.Statistics.LikeCount)
	}

	return info
}

// pickThumbnail prefers the high-resolution variant, falling back to default
func pickThumbnail(details *ytapi.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	if details.High != nil && details.High.Url != "" {
		return details.High.Url
	}
	if details.Default != nil {
		return details.Default.Url
	}
	return ""
}
