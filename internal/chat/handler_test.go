package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/palmledger/palmledger/testing"
)

func newTestHandler() http.Handler {
	svc := newTestService(nil, nil, nil, nil, testNow)
	r := chi.NewRouter()
	r.Route("/api/chat", NewHandler(nil, svc).MountRoutes)
	return r
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newTestHandler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestAskRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"msg":"hi"}`))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskAnswers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"message":"สวัสดีครับ"}`))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message   string `json:"message"`
		Intent    string `json:"intent"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, replyGreeting, resp.Message)
	assert.Equal(t, string(IntentGreeting), resp.Intent)
	assert.NotEmpty(t, resp.Timestamp)
}
