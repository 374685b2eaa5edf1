package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vera/app/repositories/mock"
	"vera/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// readFrame returns the next blank-line terminated SSE frame.
func readFrame(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return strings.Join(lines, "\n")
		}
		lines = append(lines, line)
	}
}

func TestEventControllerStream(t *testing.T) {
	board := services.NewBoardService(mock.NewPostRepository(), mock.NewCommentRepository(), zap.NewNop())
	events := NewEventController(board, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(events.Stream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readFrame(t, reader))
	assert.Equal(t, 1, board.Subscribers())

	post, err := board.CreatePost("Live", "Ada", "Poem", "Body")
	require.NoError(t, err)
	_, err = board.AddRating(post.ID, 5)
	require.NoError(t, err)

	frame := readFrame(t, reader)
	lines := strings.SplitN(frame, "\n", 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "event: post.created", lines[0])

	var e services.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &e))
	assert.Equal(t, services.EventPostCreated, e.Kind)
	assert.Equal(t, post.ID, e.PostID)

	frame = readFrame(t, reader)
	assert.True(t, strings.HasPrefix(frame, "event: rating.added\n"), frame)

	cancel()
	assert.Eventually(t, func() bool { return board.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond,
		"subscription released when the client disconnects")
}

func TestEventControllerHeartbeat(t *testing.T) {
	board := services.NewBoardService(mock.NewPostRepository(), mock.NewCommentRepository(), zap.NewNop())
	events := NewEventController(board, zap.NewNop())
	events.Heartbeat = 20 * time.Millisecond
	server := httptest.NewServer(http.HandlerFunc(events.Stream))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readFrame(t, reader))
	assert.Equal(t, ": ping", readFrame(t, reader))
}

func TestEventControllerDropsForSlowClient(t *testing.T) {
	board := services.NewBoardService(mock.NewPostRepository(), mock.NewCommentRepository(), zap.NewNop())
	events := NewEventController(board, zap.NewNop())
	events.Buffer = 0

	// With no buffer, events that arrive while the stream is busy writing are dropped; the board
	// must never block on a client.
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		events.Stream(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return board.Subscribers() == 1 }, 2*time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		_, err := board.CreatePost("Post", "Ada", "Poem", "Body")
		require.NoError(t, err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client went away")
	}
	assert.Equal(t, 0, board.Subscribers())
}
