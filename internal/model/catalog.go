package model

import "time"

// Channel represents one remote YouTube channel mirrored locally
type Channel struct {
	ID              int64      `json:"id" db:"id"`
	YouTubeID       string     `json:"youtubeId" db:"youtube_id"`
	Name            string     `json:"name" db:"name"`
	Description     string     `json:"description,omitempty" db:"description"`
	ThumbnailURL    string     `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	SubscriberCount int64      `json:"subscriberCount" db:"subscriber_count"`
	LastSyncedAt    *time.Time `json:"lastSyncedAt,omitempty" db:"last_synced_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

// Video represents one remote video mirrored locally.
// YouTubeID is unique across the whole table and is the reconciliation key.
type Video struct {
	ID           int64     `json:"id" db:"id"`
	YouTubeID    string    `json:"youtubeId" db:"youtube_id"`
	ChannelID    int64     `json:"channelId" db:"channel_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	Duration     string    `json:"duration" db:"duration"` // canonical H:MM:SS or M:SS
	PublishedAt  time.Time `json:"publishedAt" db:"published_at"`
	ViewCount    int64     `json:"viewCount" db:"view_count"`
	LikeCount    int64     `json:"likeCount" db:"like_count"`
	Tags         []string  `json:"tags" db:"tags"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// SyncResult summarizes one sync pass over a channel
type SyncResult struct {
	Channel      *Channel `json:"channel"`
	Created      int      `json:"createdCount"`
	Updated      int      `json:"updatedCount"`
	TotalFetched int      `json:"totalFetched"`
}
