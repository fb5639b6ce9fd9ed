package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/highlight-flow/internal/clips"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/events"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/pacer"
)

const heartbeatInterval = 15 * time.Second

// Server exposes the playback stream, the live event feed and the clip
// catalog over HTTP
type Server struct {
	cfg           *config.Config
	store         clips.Store
	bus           events.Bus
	notifications <-chan int
	pacer         pacer.Pacer
	logger        logger.Logger
}

// New wires the HTTP boundary over the core pipeline
func New(cfg *config.Config, store clips.Store, bus events.Bus, notifications <-chan int, p pacer.Pacer, log logger.Logger) *Server {
	return &Server{
		cfg:           cfg,
		store:         store,
		bus:           bus,
		notifications: notifications,
		pacer:         p,
		logger:        log,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /video_feed", s.handleVideoFeed)
	mux.HandleFunc("GET /notifications", s.handleNotifications)
	mux.HandleFunc("GET /highlight_clips", s.handleClips)
	mux.HandleFunc("GET /highlight_clip/{name}", s.handleClip)
	mux.HandleFunc("GET /status", s.handleStatus)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Backend API Server - Use React frontend at http://localhost:3000")
}

// handleVideoFeed replays the source as an MJPEG multipart stream. Each
// request runs its own playback; chunk scheduling rides along inside the
// pacer.
func (s *Server) handleVideoFeed(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	err := s.pacer.Stream(r.Context(), func(f pacer.Frame) error {
		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\n\r\n"); err != nil {
			return err
		}
		if _, err := w.Write(f.Data); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\r\n"); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && r.Context().Err() == nil {
		s.logger.Error(r.Context(), "Video feed ended with error: %v", err)
	}
}

// handleNotifications is the live event feed: one JSON object per processed
// chunk plus new-clip count messages, as server-sent events. The loop blocks
// on the event sources instead of polling; a heartbeat comment keeps idle
// connections alive.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", s.cfg.Server.AllowOrigin)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case e := <-s.bus.Events():
			if err := s.writeEvent(w, flusher, e); err != nil {
				return
			}

		case n := <-s.notifications:
			n += s.drainPendingNotifications()
			if _, err := fmt.Fprintf(w, "data: %d new clips detected\n\n", n); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) writeEvent(w http.ResponseWriter, flusher http.Flusher, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// drainPendingNotifications coalesces queued new-clip signals into one message
func (s *Server) drainPendingNotifications() int {
	total := 0
	for {
		select {
		case n := <-s.notifications:
			total += n
		default:
			return total
		}
	}
}

func (s *Server) handleClips(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List()
	if err != nil {
		s.logger.Error(r.Context(), "Failed to list clips: %v", err)
		http.Error(w, "failed to list clips", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []clips.Clip{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		s.logger.Error(r.Context(), "Failed to encode clip list: %v", err)
	}
}

func (s *Server) handleClip(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	path, err := s.store.ClipPath(name)
	if err != nil {
		http.Error(w, "Clip not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, path)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int{"clips_count": s.store.Count()}); err != nil {
		s.logger.Error(r.Context(), "Failed to encode status: %v", err)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	s.logger.Info(ctx, "HTTP server listening on %s", srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
