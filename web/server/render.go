package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string // Builtin scene name
	Width     int    // Image width (0 = scene default)
	Height    int    // Image height (0 = scene default)
	Threads   int    // Worker goroutines (0 = hardware threads)
	Bands     int    // Row bands (0 = one per worker)
	Remainder renderer.RemainderPolicy
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	RowsDone   int    `json:"rowsDone"`
	TotalRows  int    `json:"totalRows"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	IsComplete bool   `json:"isComplete"`
	ElapsedMs  int64  `json:"elapsedMs"`
	Stats      *Stats `json:"stats,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	Workers          int     `json:"workers"`
	Bands            int     `json:"bands"`
	Pixels           int     `json:"pixels"`
	DroppedRows      int     `json:"droppedRows"`
	AverageLuminance float64 `json:"averageLuminance"`
}

var renderCounter atomic.Int64

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(query, "threads", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Bands, err = parseIntParam(query, "bands", 0, 0, maxSize); err != nil {
		return nil, err
	}

	switch remainder := query.Get("remainder"); remainder {
	case "", renderer.RemainderLastBand.String():
		req.Remainder = renderer.RemainderLastBand
	case renderer.RemainderDrop.String():
		req.Remainder = renderer.RemainderDrop
	default:
		return nil, fmt.Errorf("unknown remainder policy %q", remainder)
	}
	return req, nil
}

// rowCounter totals rows finished across bands from per-band progress callbacks
type rowCounter struct {
	mu    sync.Mutex
	bands map[int]int
	total int
}

func (c *rowCounter) update(u renderer.ProgressUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bands == nil {
		c.bands = make(map[int]int)
	}
	c.total += u.RowsDone - c.bands[u.Band.Index]
	c.bands[u.Band.Index] = u.RowsDone
}

func (c *rowCounter) rows() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

type renderResult struct {
	fb    *renderer.Framebuffer
	stats renderer.RenderStats
	err   error
}

// handleRender renders a builtin scene and streams snapshots as server-sent events.
// Only this goroutine writes to the response; workers signal progress through a channel.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sceneObj, err := loadScene(req.Scene, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	console := make(chan ConsoleMessage, 64)
	ticks := make(chan struct{}, 1)
	var counter rowCounter

	config := renderer.DefaultRenderConfig()
	config.Workers = req.Threads
	config.Bands = req.Bands
	config.Remainder = req.Remainder
	config.OnProgress = func(u renderer.ProgressUpdate) {
		counter.update(u)
		select {
		case ticks <- struct{}{}:
		default:
		}
	}
	raytracer := renderer.NewRenderer(sceneObj, config, NewWebLogger(renderID, s.logger, console))

	// Use request context to detect client disconnection
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	start := time.Now()
	done := make(chan renderResult, 1)
	go func() {
		fb, stats, err := raytracer.Render(ctx)
		done <- renderResult{fb: fb, stats: stats, err: err}
	}()

	_, height := sceneObj.Size()
	var snapshot []byte
	for {
		select {
		case msg := <-console:
			data, _ := json.Marshal(msg)
			sendSSEEvent(w, flusher, "console", string(data))

		case <-ticks:
			fb := raytracer.Framebuffer()
			if fb == nil {
				continue
			}
			snapshot = fb.Snapshot(snapshot)
			update := ProgressUpdate{
				RowsDone:  counter.rows(),
				TotalRows: height,
				ElapsedMs: time.Since(start).Milliseconds(),
			}
			if err := s.sendSnapshot(w, flusher, fb.Width(), fb.Height(), snapshot, update); err != nil {
				cancel()
			}

		case result := <-done:
			s.drainConsole(w, flusher, console)
			if result.err != nil {
				sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", result.err))
				return
			}
			img := result.fb.Image()
			update := ProgressUpdate{
				RowsDone:   result.stats.Pixels / result.stats.Width,
				TotalRows:  height,
				IsComplete: true,
				ElapsedMs:  result.stats.Duration.Milliseconds(),
				Stats: &Stats{
					Workers:          result.stats.Workers,
					Bands:            result.stats.Bands,
					Pixels:           result.stats.Pixels,
					DroppedRows:      result.stats.DroppedRows,
					AverageLuminance: result.stats.AverageLuminance,
				},
			}
			if err := s.sendSnapshot(w, flusher, img.Rect.Dx(), img.Rect.Dy(), img.Pix, update); err != nil {
				s.logger.Printf("[%s] failed to send final frame: %v", renderID, err)
				return
			}
			sendSSEEvent(w, flusher, "complete", "Rendering completed")
			return
		}
	}
}

func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, console <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-console:
			data, _ := json.Marshal(msg)
			sendSSEEvent(w, flusher, "console", string(data))
		default:
			return
		}
	}
}

// sendSnapshot encodes RGBA pixels as PNG and sends them as a progress event
func (s *Server) sendSnapshot(w http.ResponseWriter, flusher http.Flusher, width, height int, pix []byte, update ProgressUpdate) error {
	img := &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	update.ImageData = imageData

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	sendSSEEvent(w, flusher, "progress", string(data))
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
