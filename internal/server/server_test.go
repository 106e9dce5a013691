package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/consts"
	"github.com/ncobase/taskapi/data"
	"github.com/ncobase/taskapi/data/repository"
	_ "github.com/ncobase/taskapi/data/sqlite"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/security/jwt"
	"github.com/ncobase/taskapi/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, store Pinger) *Server {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second

	cfg.Data.Database.Master = &config.DBNode{
		Driver:         "sqlite3",
		Source:         fmt.Sprintf("file:server_%d?mode=memory&cache=shared&_fk=1", dbSeq.Add(1)),
		MaxOpenConn:    1,
		AcquireTimeout: 5 * time.Second,
	}
	log := logger.NewWithWriter(io.Discard, logrus.ErrorLevel)

	d, cleanup, err := data.New(ctx, cfg.Data, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, d.Migrate(ctx))
	if store == nil {
		store = d
	}

	svc := service.New(repository.New(d, log), jwt.NewTokenManager("test-secret", time.Hour), log)
	return New(cfg, log, store, svc)
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w, body := get(t, s, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task Management API is running!", body["message"])
	assert.NotEmpty(t, w.Header().Get(consts.TraceIDHeader))

	w, body = get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "taskapi", body["name"])

	w, body = get(t, s, "/api/tasks")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])

	w, body = get(t, s, "/api/auth/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = get(t, s, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestHealthStoreDown(t *testing.T) {
	s := newTestServer(t, pingFunc(func(context.Context) error { return errors.New("down") }))

	w, body := get(t, s, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
