package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/consts"
	"github.com/ncobase/taskapi/ctxutil"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/service"
	"github.com/ncobase/taskapi/structs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	users map[string]*structs.User
	err   error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*structs.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[token]
	if !ok {
		return nil, service.ErrUnauthorized
	}
	return u, nil
}

func newEngine(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/probe", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id":  ctxutil.GetUserID(ctx),
			"trace_id": ctxutil.GetTraceID(ctx),
			"key":      c.GetString(consts.UserKey),
		})
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		token string
		ok    bool
	}{
		"":               {"", false},
		"Bearer":         {"", false},
		"Bearer ":        {"", false},
		"Basic abc":      {"", false},
		"Bearer abc":     {"abc", true},
		"bearer abc":     {"abc", true},
		"  Bearer  abc ": {"abc", true},
	}
	for header, want := range cases {
		token, ok := bearerToken(header)
		assert.Equal(t, want.ok, ok, header)
		assert.Equal(t, want.token, token, header)
	}
}

func TestAuthenticate(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, logrus.ErrorLevel)
	auth := &fakeAuth{users: map[string]*structs.User{"good": {ID: "u1"}}}
	r := newEngine(t, Authenticate(auth, log))

	t.Run("no token", func(t *testing.T) {
		w, body := serve(r, httptest.NewRequest(http.MethodGet, "/probe", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Not authorized, no token", body["error"])
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w, body := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authorized, token failed", body["error"])
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer good")
		w, body := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", body["user_id"])
		assert.Equal(t, "u1", body["key"])
	})

	t.Run("store failure", func(t *testing.T) {
		broken := newEngine(t, Authenticate(&fakeAuth{err: errors.New("db down")}, log))
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer good")
		w, body := serve(broken, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Server error", body["error"])
	})
}

func TestTrace(t *testing.T) {
	r := newEngine(t, Trace(), Tracing())

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(consts.TraceIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, body["trace_id"])

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(consts.TraceIDHeader, "abc-123")
	w, body = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(consts.TraceIDHeader))
	assert.Equal(t, "abc-123", body["trace_id"])
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logrus.InfoLevel)
	r := newEngine(t, Trace(), Logger(log), Recovery(log))

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "/probe")

	buf.Reset()
	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestCORS(t *testing.T) {
	r := newEngine(t, CORS(&config.CORS{AllowOrigins: []string{"*"}, MaxAge: time.Hour}))

	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "http://client.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	restricted := newEngine(t, CORS(&config.CORS{AllowOrigins: []string{"http://app.local"}}))
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	restricted.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
