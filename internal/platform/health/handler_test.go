package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLivenessAndStatus(t *testing.T) {
	h := New("test")

	w := serve(h, "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())

	w = serve(h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "test", status.Environment)
	assert.Equal(t, "healthy", status.Status)
}

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()
	w := serve(h, "/health/ready")
	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestReadiness(t *testing.T) {
	t.Run("ready when all checks pass", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("record_store", func(context.Context) error { return nil })

		code, body := readiness(t, h)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, "up", body.Checks["record_store"].Status)
		assert.Empty(t, body.Checks["record_store"].Error)
	})

	t.Run("not ready when any check fails", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("record_store", func(context.Context) error { return errors.New("no reachable servers") })
		h.RegisterCheck("other", func(context.Context) error { return nil })

		code, body := readiness(t, h)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "down", body.Checks["record_store"].Status)
		assert.Equal(t, "no reachable servers", body.Checks["record_store"].Error)
		assert.Equal(t, "up", body.Checks["other"].Status)
	})

	t.Run("checks receive a deadline", func(t *testing.T) {
		h := New("test")
		var hasDeadline bool
		h.RegisterCheck("record_store", func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		})

		readiness(t, h)
		assert.True(t, hasDeadline)
	})

	t.Run("checks run concurrently", func(t *testing.T) {
		h := New("test")
		release := make(chan struct{})
		var started sync.WaitGroup
		started.Add(2)
		for _, name := range []string{"a", "b"} {
			h.RegisterCheck(name, func(context.Context) error {
				started.Done()
				<-release
				return nil
			})
		}
		go func() {
			started.Wait()
			close(release)
		}()

		code, _ := readiness(t, h)
		assert.Equal(t, http.StatusOK, code)
	})
}
