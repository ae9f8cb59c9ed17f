package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/karnakar5511/query-insights/internal/application/analysis"
	appinsights "github.com/karnakar5511/query-insights/internal/application/insights"
	"github.com/karnakar5511/query-insights/internal/domain/ai"
	domain "github.com/karnakar5511/query-insights/internal/domain/analysis"
	"github.com/karnakar5511/query-insights/internal/domain/sentiment"
)

type stubGenerator struct {
	texts []string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (ai.Generation, error) {
	if s.err != nil {
		return ai.Generation{}, s.err
	}
	text := ai.FallbackText
	if s.calls < len(s.texts) {
		text = s.texts[s.calls]
	}
	s.calls++
	return ai.Generation{Text: text}, nil
}

type memRepo struct {
	records []domain.Record
	scanErr error
}

func (m *memRepo) Append(_ context.Context, r *domain.Record) error {
	m.records = append(m.records, *r)
	return nil
}

func (m *memRepo) ScanAll(_ context.Context) ([]domain.Record, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.records, nil
}

func newTestRouter(repo domain.Repository, gen ai.Generator, score appanalysis.ScoreFunc) http.Handler {
	analysisSvc := &appanalysis.Service{Repo: repo, AI: gen, Score: score}
	return NewRouter(analysisSvc, appinsights.NewService(repo))
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHomeLiveness(t *testing.T) {
	h := newTestRouter(&memRepo{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
}

func TestSentimentEndpoint(t *testing.T) {
	h := newTestRouter(&memRepo{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/sentiment", `{"text":"this is great"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Text           string  `json:"text"`
		SentimentScore float64 `json:"sentiment_score"`
		Sentiment      string  `json:"sentiment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "this is great", body.Text)
	assert.Positive(t, body.SentimentScore)
	assert.Equal(t, "Positive", body.Sentiment)
}

func TestSentimentEndpointNeverFailsOnDegenerateText(t *testing.T) {
	h := newTestRouter(&memRepo{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/sentiment", `{"text":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SentimentScore float64 `json:"sentiment_score"`
		Sentiment      string  `json:"sentiment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.SentimentScore)
	assert.Equal(t, "Neutral", body.Sentiment)
}

func TestAnalyzeSuccessReturnsQueryAndTextOnly(t *testing.T) {
	repo := &memRepo{}
	h := newTestRouter(repo, &stubGenerator{texts: []string{"an answer"}}, nil)

	rec := doJSON(t, h, http.MethodPost, "/analyze", `{"user_query":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hello", body["user_query"])
	assert.Equal(t, "an answer", body["generated_text"])
	assert.NotContains(t, body, "sentiment_score")
	assert.NotContains(t, body, "sentiment")

	require.Len(t, repo.records, 1)
}

func TestAnalyzeUpstreamFailureIs502WithDetail(t *testing.T) {
	repo := &memRepo{}
	upstream := &ai.UpstreamError{Provider: "gemini", Status: 500, Detail: "boom"}
	h := newTestRouter(repo, &stubGenerator{err: upstream}, nil)

	rec := doJSON(t, h, http.MethodPost, "/analyze", `{"user_query":"hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "boom")
	assert.Empty(t, repo.records)
}

func TestAggregationEndpointsEmptyStore(t *testing.T) {
	h := newTestRouter(&memRepo{}, &stubGenerator{}, nil)

	for _, path := range []string{"/query-trends", "/query-category-distribution", "/user-engagement"} {
		rec := doJSON(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()), path)
	}
}

func TestAggregationScanFailureIs500(t *testing.T) {
	h := newTestRouter(&memRepo{scanErr: assert.AnError}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodGet, "/user-engagement", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["detail"])
}

func TestIngestThenAggregateScenario(t *testing.T) {
	repo := &memRepo{}
	gen := &stubGenerator{texts: []string{"A", "B", "C"}}
	score := func(text string) (float64, sentiment.Label) {
		if text == "terrible" {
			return -0.5, sentiment.LabelNegative
		}
		return 0.0, sentiment.LabelNeutral
	}
	h := newTestRouter(repo, gen, score)

	for _, q := range []string{"hi", "terrible", "terrible"} {
		rec := doJSON(t, h, http.MethodPost, "/analyze", `{"user_query":"`+q+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/user-engagement", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var engagement []appinsights.EngagementCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &engagement))
	assert.Contains(t, engagement, appinsights.EngagementCount{UserQuery: "terrible", Count: 2})
	assert.Contains(t, engagement, appinsights.EngagementCount{UserQuery: "hi", Count: 1})

	rec = doJSON(t, h, http.MethodGet, "/query-category-distribution", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dist []appinsights.CategoryCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dist))
	assert.Contains(t, dist, appinsights.CategoryCount{Category: "Neutral", Count: 1})
	assert.Contains(t, dist, appinsights.CategoryCount{Category: "Negative", Count: 2})
}

func TestAnalyzeMalformedUpstreamShapeStillPersists(t *testing.T) {
	repo := &memRepo{}
	// the client degrades a missing response shape to the fallback text
	h := newTestRouter(repo, &stubGenerator{texts: []string{ai.FallbackText}}, nil)

	rec := doJSON(t, h, http.MethodPost, "/analyze", `{"user_query":"q"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ai.FallbackText, body["generated_text"])
	require.Len(t, repo.records, 1)
	assert.Equal(t, ai.FallbackText, repo.records[0].GeneratedText)
}
