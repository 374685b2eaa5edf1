package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vera/app/config"
	"vera/app/repositories"
	"vera/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:       "local",
		Server:    config.ServerConfig{Addr: "127.0.0.1:0"},
		Log:       config.LogConfig{Level: "info"},
		RateLimit: config.RateLimitConfig{RPS: 0},
		Board:     config.BoardConfig{ExcerptLength: 200},
	}
}

// setupTestBoard wires an in-memory badger store into a board service.
func setupTestBoard(t *testing.T) *services.BoardService {
	t.Helper()
	db, err := repositories.Open(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return services.NewBoardService(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		zap.NewNop(),
	)
}

func setupTestRouter(t *testing.T, cfg *config.Config) (*mux.Router, *services.BoardService) {
	t.Helper()
	board := setupTestBoard(t)

	// Create a test post.
	_, err := board.CreatePost("Test Post", "Ada", "Poem", "This is a test post")
	require.NoError(t, err)

	router, err := SetupRoutes(board, cfg, zap.NewNop())
	require.NoError(t, err)
	return router, board
}

func serve(router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	switch {
	case strings.HasPrefix(target, "/api/"):
		req.Header.Set("Content-Type", "application/json")
	case method == http.MethodPost:
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
