package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karnakar5511/query-insights/internal/domain/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-model", srv.URL, 5*time.Second)
}

func TestGenerateExtractsFirstCandidateText(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello there"}]}}]}`))
	})

	gen, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", gen.Text)
	assert.NotEmpty(t, gen.Raw)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "hi", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateMissingShapeFallsBack(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{}]}`,
		`{"candidates":[{"content":{}}]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{}]}}]}`,
	}
	for _, body := range bodies {
		body := body
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		gen, err := c.Generate(context.Background(), "hi")
		require.NoError(t, err, "body %s", body)
		assert.Equal(t, ai.FallbackText, gen.Text, "body %s", body)
	}
}

func TestGenerateNonSuccessStatusIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exhausted", http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "hi")
	var upstream *ai.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Detail, "quota exhausted")
}

func TestGenerateTransportErrorIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewClient("test-key", "", srv.URL, time.Second)

	_, err := c.Generate(context.Background(), "hi")
	var upstream *ai.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.Status)
}

func TestGenerateUndecodableBodyIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Generate(context.Background(), "hi")
	var upstream *ai.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestGenerateKeyGoesInHeaderNotURL(t *testing.T) {
	var gotKey string
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Empty(t, gotQuery)
}
