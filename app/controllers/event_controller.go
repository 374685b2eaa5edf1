package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vera/app/services"

	"go.uber.org/zap"
)

const (
	defaultEventBuffer = 16
	defaultHeartbeat   = 15 * time.Second
)

// EventController streams board changes to browsers as server-sent events.
type EventController struct {
	board  Board
	logger *zap.Logger

	// Buffer is the number of undelivered events kept per client before new ones are dropped.
	Buffer int
	// Heartbeat is the interval between keep-alive comments on an idle stream.
	Heartbeat time.Duration
}

// NewEventController creates a new EventController
func NewEventController(board Board, logger *zap.Logger) *EventController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventController{
		board:     board,
		logger:    logger,
		Buffer:    defaultEventBuffer,
		Heartbeat: defaultHeartbeat,
	}
}

// Stream holds the connection open and writes one event per board change until the client goes
// away or the server shuts down.
func (ec *EventController) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		sendError(w, r, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events := make(chan services.Event, ec.Buffer)
	unsubscribe := ec.board.Subscribe(func(e services.Event) {
		select {
		case events <- e:
		default:
			ec.logger.Warn("dropping event for slow client",
				zap.String("kind", string(e.Kind)),
				zap.Int("post_id", e.PostID))
		}
	})
	defer unsubscribe()

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(ec.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case e := <-events:
			data, err := json.Marshal(e)
			if err != nil {
				ec.logger.Error("failed to encode event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)
			flusher.Flush()
		}
	}
}
