package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent_backend/agent"
	"agent_backend/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	resp  agent.Response
	err   error
	calls int
	last  agent.Query
}

func (f *fakeResolver) Resolve(ctx context.Context, q agent.Query) (agent.Response, error) {
	f.calls++
	f.last = q
	if f.err != nil {
		return agent.Response{}, f.err
	}
	return f.resp, nil
}

type fakeStore struct {
	recs      []store.Interaction
	err       error
	lastLimit int
}

func (f *fakeStore) Append(ctx context.Context, rec *store.Interaction) error {
	return nil
}

func (f *fakeStore) Recent(ctx context.Context, limit int) ([]store.Interaction, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatOK(t *testing.T) {
	resolver := &fakeResolver{resp: agent.Response{
		Text:    "Hello there",
		Source:  agent.SourceInference,
		Latency: 0.042,
	}}
	router := New(resolver, &fakeStore{}, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodPost, "/chat", []byte(`{"user_id":1,"text":"hi"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello there", resp.Response)
	assert.Equal(t, "inference", resp.Source)
	assert.Equal(t, 0.042, resp.LatencySeconds)

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, agent.Query{UserID: 1, Text: "hi"}, resolver.last)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"not json", `hi`},
		{"missing text", `{"user_id":1}`},
		{"missing user_id", `{"text":"hi"}`},
		{"wrong user_id type", `{"user_id":"one","text":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			router := New(resolver, &fakeStore{}, zerolog.Nop()).Router()

			w := doRequest(router, http.MethodPost, "/chat", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
			assert.Equal(t, 0, resolver.calls, "pipeline must not run on invalid input")
		})
	}
}

func TestChatZeroUserID(t *testing.T) {
	resolver := &fakeResolver{resp: agent.Response{Text: "ok", Source: agent.SourceCache}}
	router := New(resolver, &fakeStore{}, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodPost, "/chat", []byte(`{"user_id":0,"text":"hi"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), resolver.last.UserID)
}

func TestChatPipelineError(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("upstream exploded with secrets")}
	router := New(resolver, &fakeStore{}, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodPost, "/chat", []byte(`{"user_id":1,"text":"hi"}`))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["detail"], "clients get a terse message only")
}

func TestAnalytics(t *testing.T) {
	st := &fakeStore{recs: []store.Interaction{
		{ID: 2, UserID: 1, InputText: "b", AIResponse: "B", Source: "inference", Timestamp: time.Now()},
		{ID: 1, UserID: 1, InputText: "a", AIResponse: "A", Source: "cache", Timestamp: time.Now()},
	}}
	router := New(&fakeResolver{}, st, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, st.lastLimit)

	var recs []store.Interaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, uint(2), recs[0].ID, "newest first")
}

func TestAnalyticsStoreError(t *testing.T) {
	st := &fakeStore{err: errors.New("connection refused")}
	router := New(&fakeResolver{}, st, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestHealthz(t *testing.T) {
	router := New(&fakeResolver{}, &fakeStore{}, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := New(&fakeResolver{}, &fakeStore{}, zerolog.Nop()).Router()

	w := doRequest(router, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
