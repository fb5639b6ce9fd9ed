package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/highlight-flow/internal/clips"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/events"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/pacer"
)

// fakePacer emits canned frames without touching ffmpeg
type fakePacer struct {
	frames []pacer.Frame
}

func (f *fakePacer) Stream(ctx context.Context, emit func(pacer.Frame) error) error {
	for _, fr := range f.frames {
		if err := emit(fr); err != nil {
			return err
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*Server, clips.Store, events.Bus, chan int, string) {
	t.Helper()
	clipsDir := t.TempDir()
	chunksDir := t.TempDir()

	cfg := &config.Config{
		Video: config.VideoConfig{Path: "media/game.mp4"},
		Whisper: config.WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper-cli",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	log := logger.New("error")
	store := clips.New(clipsDir, chunksDir, log)
	bus := events.New(16)
	notifications := make(chan int, 16)

	p := &fakePacer{frames: []pacer.Frame{
		{Index: 0, TimestampSec: 0, Data: []byte{0xFF, 0xD8, 0x11, 0xFF, 0xD9}},
		{Index: 1, TimestampSec: 0.04, Data: []byte{0xFF, 0xD8, 0x22, 0xFF, 0xD9}},
	}}

	return New(cfg, store, bus, notifications, p, log), store, bus, notifications, clipsDir
}

func TestIndex(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Backend API Server") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestStatus(t *testing.T) {
	srv, _, _, _, clipsDir := newTestServer(t)
	for _, name := range []string{"highlight_001.mp4", "highlight_002.mp4"} {
		if err := os.WriteFile(filepath.Join(clipsDir, name), []byte("mp4"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if got["clips_count"] != 2 {
		t.Errorf("clips_count = %d, want 2", got["clips_count"])
	}
}

func TestClipsListEmpty(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/highlight_clips", nil))

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want empty JSON array", rec.Body.String())
	}
}

func TestClipsList(t *testing.T) {
	srv, _, _, _, clipsDir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(clipsDir, "highlight_001.mp4"), []byte("mp4"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/highlight_clips", nil))

	var got []clips.Clip
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode clips: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("clips = %+v, want 1 entry", got)
	}
	if got[0].Name != "highlight_001.mp4" || got[0].Path != "/highlight_clip/highlight_001.mp4" {
		t.Errorf("clip = %+v", got[0])
	}
}

func TestServeClip(t *testing.T) {
	srv, _, _, _, clipsDir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(clipsDir, "highlight_001.mp4"), []byte("clip-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/highlight_clip/highlight_001.mp4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
	if rec.Body.String() != "clip-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeClipNotFound(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/highlight_clip/highlight_099.mp4", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestVideoFeedMultipart(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/video_feed", nil))

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if strings.Count(body, "--frame\r\n") != 2 {
		t.Errorf("expected 2 frame boundaries in %q", body)
	}
	if !strings.Contains(body, "Content-Type: image/jpeg") {
		t.Errorf("missing part content type in %q", body)
	}
}

func TestNotificationsStream(t *testing.T) {
	srv, _, bus, notifications, _ := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if ao := resp.Header.Get("Access-Control-Allow-Origin"); ao != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", ao)
	}

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read SSE stream: %v", err)
			}
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimPrefix(line, "data: ")
			}
		}
	}

	bus.Publish(events.Event{Transcript: "touchdown seattle", IsHighlight: true, Reason: "touchdown"})
	var event events.Event
	if err := json.Unmarshal([]byte(readData()), &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if !event.IsHighlight || event.Reason != "touchdown" {
		t.Errorf("event = %+v", event)
	}

	notifications <- 1
	if got := readData(); got != "1 new clips detected" {
		t.Errorf("clip notification = %q", got)
	}
}
