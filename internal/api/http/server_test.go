package http

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/pkg/logger"
)

type pingController struct{}

func (pingController) RegisterRoutes(r *gin.Engine) {
	r.POST("/add", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	s := NewServer(ServerConfig{Host: "127.0.0.1", Port: "0", AllowOrigins: []string{"http://localhost:3000"}}, logger.Discard())
	s.AddController(pingController{})
	return s
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8000", ServerConfig{Host: "0.0.0.0", Port: "8000"}.Addr())
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestServer().Router()

	req := httptest.NewRequest(http.MethodOptions, "/add", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_CORSForeignOrigin(t *testing.T) {
	r := newTestServer().Router()

	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestServer().Router()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/add", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `calculator_http_requests_total{method="POST",path="/add",status="200"}`)
}

func TestServer_StartStop(t *testing.T) {
	// Свободный порт берём у ОС заранее: Start не отдаёт фактический адрес.
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().(*net.TCPAddr)
	require.NoError(t, lis.Close())

	s := newTestServer()
	s.cfg.Port = strconv.Itoa(addr.Port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+s.cfg.Addr()+"/add", "application/json", nil)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("сервер не остановился")
	}
}

func TestServer_StartPortBusy(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	s := newTestServer()
	s.cfg.Port = strconv.Itoa(lis.Addr().(*net.TCPAddr).Port)

	err = s.Start(context.Background())
	assert.Error(t, err)
}

func TestRouter_EmptyOriginsFallback(t *testing.T) {
	s := NewServer(ServerConfig{}, logger.Discard())
	r := s.Router()

	req := httptest.NewRequest(http.MethodOptions, "/metrics", nil)
	req.Header.Set("Origin", DefaultAllowOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, DefaultAllowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}
