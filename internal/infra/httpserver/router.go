package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/karnakar5511/query-insights/internal/application/analysis"
	appinsights "github.com/karnakar5511/query-insights/internal/application/insights"
	domai "github.com/karnakar5511/query-insights/internal/domain/ai"
	"github.com/karnakar5511/query-insights/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	insightsSvc *appinsights.Service
}

func NewRouter(analysisSvc *appanalysis.Service, insightsSvc *appinsights.Service) http.Handler {
	r := &Router{analysisSvc: analysisSvc, insightsSvc: insightsSvc}
	mux := chi.NewRouter()

	mux.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "query-insights API is running"})
	})

	mux.Post("/sentiment", r.wrap(r.handleSentiment))
	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/query-trends", r.wrap(r.handleQueryTrends))
	mux.Get("/query-category-distribution", r.wrap(r.handleCategoryDistribution))
	mux.Get("/user-engagement", r.wrap(r.handleUserEngagement))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var upstream *domai.UpstreamError
			if errors.As(err, &upstream) {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// POST /sentiment
// Body: {"text": "..."}
// Pure scoring, no persistence; never fails on degenerate text.
func (r *Router) handleSentiment(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, r.analysisSvc.ScoreSentiment(body.Text))
	return nil
}

// POST /analyze
// Body: {"user_query": "..."}
// Forwards the query upstream, persists the interaction, returns only the
// query and the generated text.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		UserQuery string `json:"user_query"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	res, err := r.analysisSvc.Analyze(req.Context(), body.UserQuery)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()

	writeJSON(w, http.StatusOK, res)
	return nil
}

// GET /query-trends
func (r *Router) handleQueryTrends(w http.ResponseWriter, req *http.Request) error {
	trends, err := r.insightsSvc.QueryTrends(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, trends)
	return nil
}

// GET /query-category-distribution
func (r *Router) handleCategoryDistribution(w http.ResponseWriter, req *http.Request) error {
	dist, err := r.insightsSvc.CategoryDistribution(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, dist)
	return nil
}

// GET /user-engagement
func (r *Router) handleUserEngagement(w http.ResponseWriter, req *http.Request) error {
	engagement, err := r.insightsSvc.UserEngagement(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, engagement)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
