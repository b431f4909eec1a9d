package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/stillwaters/ytcatalog/internal/errors"
)

// syncRequest is the body of POST /api/videos/sync
type syncRequest struct {
	ChannelID string `json:"channelId"`
}

// handleSyncVideos triggers one reconciliation pass for a channel
func (s *Server) handleSyncVideos(w http.ResponseWriter, r *http.Request) {
	if !s.syncEnabled {
		writeError(w, http.StatusNotImplemented, "video sync is not enabled in this deployment")
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChannelID == "" {
		writeError(w, http.StatusBadRequest, "channelId is required")
		return
	}

	result, err := s.svc.SyncChannel(r.Context(), req.ChannelID)
	if err != nil {
		s.logger.WithError(err).WithField("channel", req.ChannelID).Error("sync failed")
		writeError(w, statusForError(err), publicMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListVideos returns stored videos ordered by published date descending
func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	videos, err := s.svc.ListVideos(r.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("failed to list videos")
		writeError(w, statusForError(err), publicMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

// handleListChannels returns stored channels
func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	channels, err := s.svc.ListChannels(r.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("failed to list channels")
		writeError(w, statusForError(err), publicMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, channels)
}

// statusForError maps AppError codes to HTTP status codes
func statusForError(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidArg:
		return http.StatusBadRequest
	default:
		// Upstream, conflict and store failures all surface as 500
		return http.StatusInternalServerError
	}
}

// publicMessage returns a short error message safe to expose; internals
// and stack details stay in the server log
func publicMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound:
		return "channel not found"
	case apperrors.CodeInvalidArg:
		return "invalid request"
	case apperrors.CodeUpstream:
		return "upstream video provider error"
	default:
		return "internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
