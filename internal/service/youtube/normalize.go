package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/stillwaters/ytcatalog/internal/model"
)

// durationPattern matches the provider's ISO-8601 period encoding.
// Each component is optional; "PT1H2M3S", "PT5M" and "PT45S" are all valid.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// NormalizeDuration converts an ISO-8601 period string to the canonical
// "H:MM:SS" form, or "M:SS" when no hour component is present. Input that
// matches no component normalizes to "0:00"; this function never fails.
func NormalizeDuration(raw string) string {
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return "0:00"
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])

	if m[1] != "" {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// NormalizeVideo converts one provider video item into the canonical
// persisted shape owned by the given channel row. Pure and total: malformed
// fields degrade to defaults rather than aborting a sync pass.
func NormalizeVideo(info VideoInfo, channelID int64) *model.Video {
	tags := info.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Video{
		YouTubeID:    info.ID,
		ChannelID:    channelID,
		Title:        info.Title,
		Description:  info.Description,
		ThumbnailURL: info.ThumbnailURL,
		Duration:     NormalizeDuration(info.Duration),
		PublishedAt:  parsePublishedAt(info.PublishedAt),
		ViewCount:    info.ViewCount,
		LikeCount:    info.LikeCount,
		Tags:         tags,
	}
}

// parsePublishedAt parses the provider's RFC3339 timestamp, degrading to
// the zero time on malformed input
func parsePublishedAt(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
