package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/stillwaters/ytcatalog/internal/service/youtube"
)

// Server exposes the catalog over HTTP: one sync trigger plus read-only
// listings of the mirrored videos and channels.
type Server struct {
	svc         youtube.Service
	syncEnabled bool
	logger      *logrus.Logger
	router      *mux.Router
}

// New creates a new Server. syncEnabled=false makes the sync endpoint
// answer 501 for deployments without a YouTube API key.
func New(svc youtube.Service, syncEnabled bool, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	s := &Server{
		svc:         svc,
		syncEnabled: syncEnabled,
		logger:      logger,
		router:      mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.router)
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/videos/sync", s.handleSyncVideos).Methods(http.MethodPost)
	s.router.HandleFunc("/api/videos", s.handleListVideos).Methods(http.MethodGet)
	s.router.HandleFunc("/api/channels", s.handleListChannels).Methods(http.MethodGet)
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags every request with an ID and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	})
}
