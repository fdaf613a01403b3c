package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/copywriter/internal/auth"
	"github.com/mmynk/copywriter/internal/metrics"
	"github.com/mmynk/copywriter/internal/models"
)

func TestLogging_RecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(Logging(logger, m))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	out := buf.String()
	assert.Contains(t, out, "Request completed")
	assert.Contains(t, out, `"path":"/items/42"`)
	assert.Contains(t, out, `"status":418`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/items/{id}", "418")))
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestLogging_IncludesSessionUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sessions := auth.NewSessionManager(testSecret, 0)
	user := models.NewUser("alice", "hash")
	token, err := sessions.Generate(user)
	require.NoError(t, err)

	users := &memUsers{users: map[string]*models.User{user.ID: user}}
	inner := RequireSession(sessions, users, testCookie, "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler := Logging(logger, nil)(inner)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"user_id":"`+user.ID+`"`)
}
