package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jusunglee/hangulfun/internal/db/sqlite"
	"github.com/jusunglee/hangulfun/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string) (translation.Translation, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(translation.Translation), args.Error(1)
}

func newTestServer(t *testing.T, tr *MockTranslator) (*httptest.Server, *sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var router *Router
	if tr != nil {
		router = NewRouter(repo, log, tr)
	} else {
		router = NewRouter(repo, log, nil)
	}
	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv, repo
}

func getJSON(t *testing.T, srv *httptest.Server, path string, params url.Values, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path + "?" + params.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAnalyzeRecordsLookup(t *testing.T) {
	srv, repo := newTestServer(t, nil)

	var word struct {
		Text       string `json:"text"`
		Pronounced string `json:"pronounced"`
		Romanized  string `json:"romanized"`
		Syllables  []any  `json:"syllables"`
	}
	code := getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {"밥을"}}, &word)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "밥을", word.Text)
	assert.Equal(t, "바블", word.Pronounced)
	assert.Equal(t, "babeul", word.Romanized)
	assert.Len(t, word.Syllables, 2)

	getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {"밥을"}}, nil)
	l, err := repo.GetLookup(context.Background(), "밥을")
	require.NoError(t, err)
	assert.Equal(t, int64(2), l.Count)
	assert.Equal(t, "babeul", l.Romanized)
}

func TestAnalyzeSkipsNonKoreanHistory(t *testing.T) {
	srv, repo := newTestServer(t, nil)

	code := getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {"hello"}}, nil)
	assert.Equal(t, http.StatusOK, code)

	count, err := repo.CountLookups(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAnalyzeRequiresText(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body map[string]string
	code := getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {"   "}}, &body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "text is required", body["error"])

	code = getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {strings.Repeat("가", 501)}}, &body)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRomanize(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body struct {
		Script    string `json:"script"`
		Romanized string `json:"romanized"`
		Literal   string `json:"literal"`
	}
	code := getJSON(t, srv, "/api/v1/romanize", url.Values{"text": {"학교"}}, &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "korean", body.Script)
	assert.Equal(t, "hakkkyo", body.Romanized)
	assert.Equal(t, "hakgyo", body.Literal)
}

func TestLookups(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	for _, text := range []string{"물", "밥", "밥"} {
		getJSON(t, srv, "/api/v1/analyze", url.Values{"text": {text}}, nil)
	}

	var body struct {
		Data []struct {
			Text  string `json:"text"`
			Count int64  `json:"count"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	code := getJSON(t, srv, "/api/v1/lookups", url.Values{"sort": {"top"}, "limit": {"1"}}, &body)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "밥", body.Data[0].Text)
	assert.Equal(t, int64(2), body.Data[0].Count)
	assert.Equal(t, int64(2), body.Total)

	code = getJSON(t, srv, "/api/v1/lookups", url.Values{"sort": {"hot"}}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func postTranslate(t *testing.T, srv *httptest.Server, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/translate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestTranslate(t *testing.T) {
	tr := new(MockTranslator)
	tr.On("Translate", mock.Anything, "보고 싶다").
		Return(translation.Translation{Original: "보고 싶다", Translated: "I miss you"}, nil).Once()
	tr.On("Translate", mock.Anything, "물").
		Return(translation.Translation{}, errors.New("provider down")).Once()
	srv, _ := newTestServer(t, tr)

	code, body := postTranslate(t, srv, `{"text": " 보고 싶다 "}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "I miss you", body["translated"])
	assert.Equal(t, false, body["cached"])

	code, body = postTranslate(t, srv, `{"text": "물"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", body["error"])

	code, _ = postTranslate(t, srv, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	tr.AssertExpectations(t)
}

func TestTranslateNotConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	code, body := postTranslate(t, srv, `{"text": "물"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "translation is not configured", body["error"])
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body map[string]string
	code := getJSON(t, srv, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
